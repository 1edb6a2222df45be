package motor

import (
	"github.com/pb33f/reqgrid/motor/model"
)

// ViewerOptions configures how a dataset is loaded and first displayed.
type ViewerOptions struct {
	DataPath    string       // empty loads the embedded sample requests
	HARRegion   model.Region // region stamped on imported HAR entries
	GroupBy     string       // "", "region" or "method"
	InitialSort string       // column id sorted ascending on open, empty for source order
}

func DefaultViewerOptions() ViewerOptions {
	return ViewerOptions{
		HARRegion: DefaultHARRegion,
	}
}

// Source resolves the record source for these options.
func (o ViewerOptions) Source() RecordSource {
	return OpenSource(o.DataPath, o.HARRegion)
}

// GroupKey resolves GroupBy. A nil key means no grouping.
func (o ViewerOptions) GroupKey() GroupKey {
	return GroupKeyFor(o.GroupBy)
}

// GroupKeyFor maps a grouping name onto its key function.
func GroupKeyFor(name string) GroupKey {
	switch name {
	case "region":
		return GroupByRegion
	case "method":
		return GroupByMethod
	default:
		return nil
	}
}
