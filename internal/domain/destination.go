package domain

type Destination struct {
	ID          string      `json:"id" yaml:"id" validate:"required,max=64,slug"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Tagline     string      `json:"tagline" yaml:"tagline"`
	Region      string      `json:"region" yaml:"region" validate:"required"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Description string      `json:"description" yaml:"description" validate:"required"`
	BestTime    string      `json:"best_time" yaml:"best_time"`
	Duration    string      `json:"duration" yaml:"duration"`
	Highlights  []string    `json:"highlights" yaml:"highlights"`
	Activities  []string    `json:"activities" yaml:"activities"`
	HowToReach  string      `json:"how_to_reach" yaml:"how_to_reach"`
	Tips        []string    `json:"tips" yaml:"tips"`
}

type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// Clone returns a copy that shares no slices with d.
func (d Destination) Clone() Destination {
	out := d
	out.Highlights = cloneStrings(d.Highlights)
	out.Activities = cloneStrings(d.Activities)
	out.Tips = cloneStrings(d.Tips)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
