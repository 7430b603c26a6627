package resources

import (
	"embed"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/pkg/errors"

	"eventtimer/internal/core/countdown"
)

const iconDir = "icons/"

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// StateIcon returns the tray and window icon for a countdown state.
func StateIcon(state countdown.State) fyne.Resource {
	switch state {
	case countdown.StateRunning:
		return MustIcon("running.svg")
	case countdown.StateEnded:
		return MustIcon("ended.svg")
	default:
		return MustIcon("idle.svg")
	}
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load resource %s", path)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
