package curriculum

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// registry holds the built-in topics with precomputed indices.
type registry struct {
	topics  []Topic
	bySlug  map[string]*Topic
	byLevel map[Level][]Topic
}

// reg is the package-level registry, set by init() from the embedded data.
var reg *registry

func init() {
	ds, err := loadFS(builtinFS, "data")
	if err != nil {
		panic(fmt.Sprintf("curriculum: load built-in data: %v", err))
	}
	reg = buildRegistry(ds.Topics)
}

// buildRegistry indexes topics. Later duplicates of a slug are ignored by
// the slug index; Validate reports them.
func buildRegistry(topics []Topic) *registry {
	r := &registry{
		topics:  topics,
		bySlug:  make(map[string]*Topic, len(topics)),
		byLevel: make(map[Level][]Topic),
	}
	for i := range r.topics {
		t := &r.topics[i]
		if _, dup := r.bySlug[t.Slug]; !dup {
			r.bySlug[t.Slug] = t
		}
		r.byLevel[t.Level] = append(r.byLevel[t.Level], *t)
	}
	return r
}

// AllTopics returns every built-in topic in file order.
func AllTopics() []Topic {
	out := make([]Topic, len(reg.topics))
	copy(out, reg.topics)
	return out
}

// GetTopic returns the built-in topic with the given slug.
func GetTopic(slug string) (Topic, error) {
	if t, ok := reg.bySlug[slug]; ok {
		return *t, nil
	}
	return Topic{}, fmt.Errorf("%w: %q", ErrTopicNotFound, slug)
}

// ByLevel returns the built-in topics taught at the given level.
func ByLevel(l Level) []Topic {
	return reg.byLevel[l]
}

// Builtin returns the embedded dataset as a whole.
func Builtin() Dataset {
	return Dataset{Version: SupportedVersion, Topics: AllTopics()}
}

// FindTopic looks a slug up in an arbitrary dataset.
func (d Dataset) FindTopic(slug string) (Topic, error) {
	for _, t := range d.Topics {
		if t.Slug == slug {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%w: %q", ErrTopicNotFound, slug)
}

// loadFS decodes every .yaml file under dir in lexical order.
func loadFS(fsys fs.FS, dir string) (Dataset, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	merged := Dataset{Version: SupportedVersion}
	for _, name := range names {
		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return Dataset{}, fmt.Errorf("read %s: %w", name, err)
		}
		ds, err := decode(b)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", name, err)
		}
		merged.Topics = append(merged.Topics, ds.Topics...)
	}
	return merged, nil
}
