package framer

// Orientation classifies an image by its aspect ratio.
type Orientation string

// Possible orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
	Square    Orientation = "square"
)

// Metadata describes a source image as it entered the pipeline, after any
// embedded orientation correction was applied.
type Metadata struct {
	Path        string      `json:"path"`
	Orientation Orientation `json:"orientation"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
}

// Result records the outcome of processing a single image. It is never
// mutated after creation; OutputPath is empty when Success is false.
type Result struct {
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path,omitempty"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}
