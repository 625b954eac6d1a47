package tools

import (
	"fmt"
	"strconv"
	"strings"

	"hnet-mcp/internal/envelope"
)

const (
	savedPrefix = "Saved: "
	totalMarker = "Total images extracted:"
)

// ImageExtractorTool saves a notebook's image outputs via extract_notebook_images.py.
type ImageExtractorTool struct{}

// NewImageExtractorTool constructs the notebook image extraction tool.
func NewImageExtractorTool() *ImageExtractorTool { return &ImageExtractorTool{} }

func (e *ImageExtractorTool) Name() string { return "extract_notebook_images" }

func (e *ImageExtractorTool) Description() string {
	return "Extract all images (PNG, JPEG, SVG) from a Jupyter notebook. Images are saved with systematic naming: cell_X_output_Y_fig_Z.ext"
}

func (e *ImageExtractorTool) Params() []Param {
	return []Param{
		{Name: "notebook_path", Type: TypePath, Description: "Path to the Jupyter notebook (.ipynb file)"},
		{Name: "output_dir", Type: TypePath, Description: "Directory to save extracted images"},
	}
}

func (e *ImageExtractorTool) Build(req Request) (Invocation, error) {
	outputDir := req.String("output_dir")
	return Invocation{
		Script: "extract_notebook_images.py",
		Args:   []string{req.String("notebook_path"), outputDir},
		Action: "extract images",
		Parse: func(stdout string) (string, envelope.Payload, error) {
			files, total, err := ParseImageOutput(stdout)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("Extracted %d images from notebook", total), envelope.Payload{
				"output_directory": outputDir,
				"extracted_files":  files,
				"total_count":      total,
			}, nil
		},
	}, nil
}

// ParseImageOutput reads the extractor's line protocol: one "Saved: <path>" line per image
// and an optional "Total images extracted: <n>" line. Without the total line the count is
// the number of saved lines. A total line whose count is not an integer is an error.
func ParseImageOutput(stdout string) ([]string, int, error) {
	files := []string{}
	total := -1
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		line = strings.TrimRight(line, "\r")
		if path, ok := strings.CutPrefix(line, savedPrefix); ok {
			files = append(files, path)
			continue
		}
		if total >= 0 {
			continue
		}
		if _, count, ok := strings.Cut(line, totalMarker); ok {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n < 0 {
				return nil, 0, fmt.Errorf("malformed image count line %q", line)
			}
			total = n
		}
	}
	if total < 0 {
		total = len(files)
	}
	return files, total, nil
}
