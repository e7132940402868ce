package buildinfo

import "fmt"

const Graffiti = "              _ _\n _ __  ___ __| | |___ _  _ _ _\n| '  \\/ -_) _` | / / ' \\| ' \\\n|_|_|_\\___\\__,_|_\\_\\_||_|_||_|\n\n"

// Set at link time with -ldflags "-X".
var (
	BuildTag string = "v0.0.0"
	Name     string = "medknn"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

func (b buildinfo) String() string {
	return fmt.Sprintf("%s: %s, %s", b.Name(), b.Time(), b.Tag())
}

var Info buildinfo
