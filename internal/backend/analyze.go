package backend

import (
	"context"
	"fmt"
)

// Analyze submits the primary file (and an optional ancillary text file) for
// integrity analysis. The raw decoded payload is returned verbatim so the
// caller can normalize it and keep it as chat context.
func (c *Client) Analyze(ctx context.Context, primaryPath, optionalTextPath string, progress ProgressFunc) (map[string]any, error) {
	files := map[string]string{"file": primaryPath}
	if optionalTextPath != "" {
		files["optional_text_file"] = optionalTextPath
	}
	return c.postMultipart(ctx, "/analyze", files, nil, progress)
}

// GenerateVoice requests an educational voice-clone artifact: the voice from
// the reference file speaking targetText. Returns the server-side path of
// the generated artifact.
func (c *Client) GenerateVoice(ctx context.Context, filePath, targetText string) (string, error) {
	payload, err := c.postMultipart(ctx, "/generate/voice",
		map[string]string{"file": filePath},
		map[string]string{"target_text": targetText},
		nil)
	if err != nil {
		return "", err
	}
	return generatedPath(payload)
}

// GenerateFaceSwap requests an educational face-swap artifact between the
// two given videos. Returns the server-side path of the generated artifact.
func (c *Client) GenerateFaceSwap(ctx context.Context, sourceVideoPath, targetVideoPath string) (string, error) {
	payload, err := c.postMultipart(ctx, "/generate/faceswap",
		map[string]string{
			"source_video": sourceVideoPath,
			"target_video": targetVideoPath,
		},
		nil,
		nil)
	if err != nil {
		return "", err
	}
	return generatedPath(payload)
}

func generatedPath(payload map[string]any) (string, error) {
	path, ok := payload["generated_path"].(string)
	if !ok || path == "" {
		return "", fmt.Errorf("generation response missing generated_path")
	}
	return path, nil
}
