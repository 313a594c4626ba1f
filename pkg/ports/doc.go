/*
Package ports defines the driven ports (interfaces) of a scena workspace.

These interfaces decouple the selection engine from where layer documents
live, allowing the same workspace to be fed from YAML files, a Loam
directory, Redis or memory.

# Key Interfaces

  - LayerSource: Loads the document (layers and group metadata) a workspace works on.
  - LayerStore: Persists documents by id (Memory, Redis).
  - SelectionStore: Persists the selection of each editing session (Memory, Redis).
  - Watchable: Signals that a source changed and should be reloaded.
  - DistributedLocker: Serializes writes to one document or session across replicas.
*/
package ports
