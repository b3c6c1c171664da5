/*
Package domain contains the core domain models of the folio workflow engine.

It defines the shared state threaded through every step of a run, the typed
partial updates a step returns, the step contract itself, lifecycle events and
the run failure taxonomy. This package is kept pure and free of I/O, following
the Hexagonal Architecture used across the module.

# Key Entities

  - State: the single mutable record of one workflow run (inputs, artifacts, retry bookkeeping).
  - Update: a field-optional partial state returned by a step and merged by the engine.
  - Step: the unit of work the engine sequences.
  - RunError: the one failure object a caller receives, tagged with a Kind.
*/
package domain
