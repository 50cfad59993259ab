package display

import (
	"fmt"
	"strings"

	"github.com/decibelcooper/sctview/mctree"
)

// Category is a drawable collection of an event.
type Category uint8

const (
	Vertices Category = 1 << iota
	Long
	Velo
	MC
)

// AllCategories lists the categories in drawing order.
var AllCategories = []Category{Long, Velo, MC, Vertices}

var categoryNames = map[string]Category{
	"vtx":  Vertices,
	"trk":  Long,
	"long": Long,
	"vtrk": Velo,
	"velo": Velo,
	"mc":   MC,
}

func (c Category) String() string {
	switch c {
	case Vertices:
		return "vtx"
	case Long:
		return "trk"
	case Velo:
		return "vtrk"
	case MC:
		return "mc"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Categories is a set of categories.
type Categories uint8

func (cs Categories) Has(c Category) bool { return cs&Categories(c) != 0 }

// With returns cs with c added.
func (cs Categories) With(c Category) Categories { return cs | Categories(c) }

// Without returns cs with c removed.
func (cs Categories) Without(c Category) Categories { return cs &^ Categories(c) }

func (cs Categories) String() string {
	var names []string
	for _, c := range []Category{Vertices, Long, Velo, MC} {
		if cs.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseCategories parses a list of category names such as
// "vtx,trk,vtrk,mc". "all" selects every category.
func ParseCategories(names ...string) (Categories, error) {
	var cs Categories
	for _, list := range names {
		for _, name := range strings.Split(list, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch name {
			case "":
				continue
			case "all":
				cs = Categories(Vertices | Long | Velo | MC)
				continue
			}
			c, ok := categoryNames[name]
			if !ok {
				return 0, fmt.Errorf("unknown category %q", name)
			}
			cs = cs.With(c)
		}
	}
	return cs, nil
}

// MCFilter selects the MC particles drawn.
type MCFilter int

const (
	AllMC MCFilter = iota
	FinalStateMC
	LongLivedMC
)

// ParseMCFilter parses "all", "final" or "longlived".
func ParseMCFilter(s string) (MCFilter, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return AllMC, nil
	case "final":
		return FinalStateMC, nil
	case "longlived", "long-lived":
		return LongLivedMC, nil
	}
	return AllMC, fmt.Errorf("unknown MC filter %q", s)
}

func (f MCFilter) accepts(flag mctree.Flag) bool {
	switch f {
	case FinalStateMC:
		return flag&mctree.FinalState != 0
	case LongLivedMC:
		return flag&mctree.LongLived != 0
	}
	return true
}
