package presenter

import (
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gobuffalo/packr/v2"
)

var assetBox = packr.New("assets", "./assets")

// EmitAssets writes the deck stylesheet and scripts to destDir/assets.
func EmitAssets(destDir string) error {
	destPath := filepath.Join(destDir, "assets")
	if err := os.MkdirAll(destPath, 0777); err != nil {
		return err
	}
	for _, f := range assetBox.List() {
		fPath := filepath.Join(destPath, f)
		if outDir := filepath.Dir(fPath); outDir != destPath {
			if err := os.MkdirAll(outDir, 0777); err != nil {
				return err
			}
		}
		data, err := assetBox.Find(f)
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(fPath, data, 0644); err != nil {
			return err
		}
	}
	logger.WithField("dir", destPath).Debug("emitted assets")
	return nil
}

// ServeAssets serves the boxed assets. Mount it below /assets/ with the
// prefix stripped.
func ServeAssets() http.Handler {
	return http.FileServer(assetBox)
}
