package mcp

// CaptureBackgroundInput is the input for the capture_background tool.
type CaptureBackgroundInput struct {
	Mask     *bool `json:"mask,omitempty" jsonschema:"When false, skip multi-monitor masking and return the raw background canvas. Defaults to the server's configured behavior."`
	MaxWidth int   `json:"max_width,omitempty" jsonschema:"Downscale the image to at most this many pixels wide, preserving aspect ratio (0 = original size)."`
}

// CaptureBackgroundOutput is the output for the capture_background tool.
type CaptureBackgroundOutput struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
	DataBase64 string `json:"data_base64"`
}
