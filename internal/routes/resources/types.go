package resources

import (
	"unleashed-proxy/internal/paginate"
	"unleashed-proxy/internal/unleashed"
)

// ChunkInfo is the continuation descriptor attached to bounded or truncated
// responses. The client echoes NextStartPage back as startPage to resume;
// nothing is persisted server-side.
type ChunkInfo struct {
	StartPage           int    `json:"StartPage"`
	EndPage             int    `json:"EndPage"`
	HasMorePages        bool   `json:"HasMorePages"`
	NextStartPage       *int   `json:"NextStartPage"`
	TotalPagesAvailable int    `json:"TotalPagesAvailable"`
	TotalItemsAvailable int    `json:"TotalItemsAvailable"`
	StopReason          string `json:"StopReason"`
}

type ResourceResponse struct {
	Items     []unleashed.Record `json:"Items"`
	ChunkInfo *ChunkInfo         `json:"ChunkInfo,omitempty"`
}

func NewChunkInfo(result paginate.Result) *ChunkInfo {
	info := &ChunkInfo{
		StartPage:           result.StartPage,
		EndPage:             result.LastPage,
		HasMorePages:        result.HasMorePages(),
		TotalPagesAvailable: result.TotalPages,
		TotalItemsAvailable: result.TotalItems,
		StopReason:          string(result.StopReason),
	}
	if next := result.NextStartPage(); next > 0 {
		info.NextStartPage = &next
	}
	return info
}
