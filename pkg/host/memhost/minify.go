package memhost

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", html.Minify)
	})
	return minifier
}

// Minify compacts serialized HTML. On failure the input is returned as is.
func Minify(src string) string {
	out, err := getMinifier().String("text/html", src)
	if err != nil {
		return src
	}
	return out
}
