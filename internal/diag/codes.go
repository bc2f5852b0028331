package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ingest: malformed or rejected facts. One skipped fact per diagnostic,
	// decoding always continues.
	IngestInfo            Code = 1000
	IngestBadJSON         Code = 1001
	IngestUnknownKind     Code = 1002
	IngestMissingMethod   Code = 1003
	IngestBadMethod       Code = 1004
	IngestMissingPath     Code = 1005
	IngestMissingRoute    Code = 1006
	IngestParamMismatch   Code = 1007
	IngestOrphanParam     Code = 1008
	IngestBadTree         Code = 1009
	IngestBadConfidence   Code = 1010
	IngestDuplicateAuth   Code = 1011

	// Registry: component template extraction.
	RegistryInfo          Code = 2000
	RegistryNoLocator     Code = 2001
	RegistryExcludedRoute Code = 2002

	// Resolution: locator cascade outcomes worth surfacing.
	ResolveInfo             Code = 3000
	ResolveDuplicateDropped Code = 3001
	ResolveUnknownComponent Code = 3002

	// Assembly: merge and consolidation.
	AssembleInfo        Code = 4000
	PhantomPageDropped  Code = 4001
	AmbiguousPageMerge  Code = 4002
	EndpointCollision   Code = 4003
	UnlinkedFormTarget  Code = 4004

	// Chunking.
	ChunkInfo      Code = 5000
	ChunkEmptyPair Code = 5001
)

func (c Code) String() string {
	switch {
	case c >= 5000:
		return fmt.Sprintf("CHK%04d", uint16(c))
	case c >= 4000:
		return fmt.Sprintf("ASM%04d", uint16(c))
	case c >= 3000:
		return fmt.Sprintf("RES%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("REG%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("ING%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}
