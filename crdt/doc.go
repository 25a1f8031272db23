/*
Package crdt implements the state-based last-writer-wins element dictionary
(LWW-Element-Dict) upon that the replicas of lwwdict are built.

A dictionary keeps two sets: an add-set mapping each key to its most recent
accepted value and timestamp, and a remove-set of tombstone timestamps. A key
is visible iff it sits in the add-set and is not dominated by its tombstone.
Ties between equal timestamps are resolved by a configurable Bias.

CAUTION! Consider these two requirements:
  - Timestamps are supplied by the caller. This package neither generates them
    nor corrects clock skew between replicas. Any type implementing Timestamp
    can be used, time.Time and Logical among them.
  - Two replicas only converge if they were created with the same Bias.
    Merge refuses to fold a dictionary configured differently.

Access to a Dict is synchronized internally and safe for concurrent use.
*/
package crdt
