/*
Package ports defines the driven ports (interfaces) of the folio engine.

These interfaces decouple the workflow from external implementations, allowing
the engine to run against any generative service and hand its artifacts to any
output sink.

# Key Interfaces

  - Generator: the generative-service collaborator (free text and structured output).
  - ArtifactSink: receives the rendered documents of a finished run.
  - ArtifactStore: a sink that can also read artifacts back (memory, file, Redis).
  - ContentEngine: the run entry point consumed by the HTTP and MCP adapters.
*/
package ports
