package server

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// PageConfig drives the Dropzone options rendered on the upload page.
type PageConfig struct {
	CDN             string
	Version         string
	TransferTimeout time.Duration
	MaxFileSizeMB   int
	ChunkSizeBytes  int
	ParallelChunks  bool
	ForceChunking   bool
	// CustomPage, when it exists, is served as is instead of the built-in page.
	CustomPage string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <link rel="stylesheet" href="{{.AssetBase}}/min/dropzone.min.css"/>
    <link rel="stylesheet" href="{{.AssetBase}}/min/basic.min.css"/>
    <script type="application/javascript" src="{{.AssetBase}}/min/dropzone.min.js"></script>
    <title>filedrop</title>
</head>
<body>
    <div id="content" style="width: 800px; margin: 0 auto;">
        <h2>Upload new files</h2>
        <form method="POST" action="/upload" class="dropzone dz-clickable" id="dropper" enctype="multipart/form-data">
        </form>

        <h2>Uploaded</h2>
        <div id="uploaded"></div>

        <script type="application/javascript">
            Dropzone.options.dropper = {
                paramName: 'file',
                chunking: true,
                forceChunking: {{.ForceChunking}},
                url: '/upload',
                retryChunks: true,
                parallelChunkUploads: {{.ParallelChunks}},
                timeout: {{.TimeoutMillis}},
                maxFilesize: {{.MaxFileSizeMB}},
                chunkSize: {{.ChunkSizeBytes}},
                init: function () {
                    this.on("complete", function (file) {
                        const entry = document.createElement("div");
                        entry.textContent = file.upload.filename + " (uuid: " + file.upload.uuid + ")";
                        document.getElementById("uploaded").appendChild(entry);
                    });
                }
            };
        </script>
    </div>
</body>
</html>
`))

type indexData struct {
	AssetBase      string
	ForceChunking  bool
	ParallelChunks bool
	TimeoutMillis  int64
	MaxFileSizeMB  int
	ChunkSizeBytes int
}

// RenderIndex returns the upload page, preferring CustomPage when present on fs.
func RenderIndex(fs afero.Fs, page PageConfig) ([]byte, error) {
	if page.CustomPage != "" {
		exists, err := afero.Exists(fs, page.CustomPage)
		if err != nil {
			return nil, fmt.Errorf("stat index page %s: %w", page.CustomPage, err)
		}
		if exists {
			return afero.ReadFile(fs, page.CustomPage)
		}
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexData{
		AssetBase:      strings.TrimRight(page.CDN, "/") + "/" + page.Version,
		ForceChunking:  page.ForceChunking,
		ParallelChunks: page.ParallelChunks,
		TimeoutMillis:  page.TransferTimeout.Milliseconds(),
		MaxFileSizeMB:  page.MaxFileSizeMB,
		ChunkSizeBytes: page.ChunkSizeBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("render index page: %w", err)
	}
	return buf.Bytes(), nil
}
