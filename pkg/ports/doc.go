/*
Package ports defines the driven ports (interfaces) around the Penrose generator.

These interfaces decouple the pure generator from the adapters that expose it,
allowing results to be cached in different backends and tilings to be resolved
from different sources.

# Key Interfaces

  - Generator: the facade consumed by the HTTP, MCP and CLI adapters.
  - SegmentCache: memoises generation results (memory, Redis).
  - TilingSource: resolves named tilings (registry, Loam catalogs).
*/
package ports
