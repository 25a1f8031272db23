package replica

import (
	"reflect"

	"github.com/numbleroot/lwwdict/crdt"
	"github.com/pkg/errors"
)

// Variables

// ErrDiverged is returned by Converge if replicas still
// disagree after a full anti-entropy round. This only
// happens if replicas observed different payloads for
// one key at exactly the same timestamp.
var ErrDiverged = errors.New("replicas did not converge")

// Functions

// Converge runs one full-mesh anti-entropy round among
// services: every replica merges a snapshot of every
// other replica. Afterwards all materialized views are
// compared against the first replica's.
func Converge[K comparable, V any, T crdt.Timestamp[T]](services []Service[K, V, T]) error {

	for _, receiver := range services {

		for _, sender := range services {

			if sender == receiver {
				continue
			}

			err := receiver.Merge(sender.Snapshot())
			if err != nil {
				return errors.Wrapf(err, "merging '%s' into '%s' failed", sender.Name(), receiver.Name())
			}
		}
	}

	if len(services) == 0 {
		return nil
	}

	reference := services[0].Elements()

	for _, s := range services[1:] {

		if !reflect.DeepEqual(reference, s.Elements()) {
			return errors.Wrapf(ErrDiverged, "'%s' and '%s' disagree", services[0].Name(), s.Name())
		}
	}

	return nil
}
