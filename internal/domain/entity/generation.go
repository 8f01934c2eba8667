package entity

// FallbackFilename is assigned when the UI exposes generated code but no
// resolvable filename for it.
const FallbackFilename = "component.tsx"

// GenerationRequest is the unit of work for one HTTP call: a single
// prompt, immutable once accepted.
type GenerationRequest struct {
	ID     string
	Prompt string
}

type GeneratedFile struct {
	Name    string
	Content string
}

// GenerationResult maps filenames to extracted source text. Keys are
// unique and iteration order is extraction order, so files are kept as a
// slice rather than a map.
type GenerationResult struct {
	files []GeneratedFile
	index map[string]int
}

func NewGenerationResult() *GenerationResult {
	return &GenerationResult{index: make(map[string]int)}
}

// Add records one extracted file. A repeated filename overwrites the
// earlier content but keeps its original position.
func (r *GenerationResult) Add(name, content string) {
	if name == "" {
		name = FallbackFilename
	}
	if i, ok := r.index[name]; ok {
		r.files[i].Content = content
		return
	}
	r.index[name] = len(r.files)
	r.files = append(r.files, GeneratedFile{Name: name, Content: content})
}

func (r *GenerationResult) Files() []GeneratedFile {
	return r.files
}

func (r *GenerationResult) Len() int {
	return len(r.files)
}

// HasContent reports whether at least one entry carries non-empty source
// text. A result without content is a failed extraction, not a success.
func (r *GenerationResult) HasContent() bool {
	for _, f := range r.files {
		if f.Content != "" {
			return true
		}
	}
	return false
}

// FileMap returns the files as a plain map for the HTTP response body.
func (r *GenerationResult) FileMap() map[string]string {
	m := make(map[string]string, len(r.files))
	for _, f := range r.files {
		m[f.Name] = f.Content
	}
	return m
}
