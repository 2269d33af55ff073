package wallpaper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RandomIDLabel replaces the id in suggested file names when none is known
const RandomIDLabel = "random"

var svgFilenamePattern = regexp.MustCompile(`wallpaper_\w+_(\d+)\.svg`)

// ParseCharacterID extracts the character id from a Content-Disposition
// header naming a file like wallpaper_<list>_<digits>.svg.
func ParseCharacterID(contentDisposition string) (int, bool) {
	if contentDisposition == "" {
		return 0, false
	}

	m := svgFilenamePattern.FindStringSubmatch(contentDisposition)
	if m == nil {
		return 0, false
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// SuggestedFilename returns wallpaper_<list>_<id>.png, using "random" for a blank id
func SuggestedFilename(characterList, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		id = RandomIDLabel
	}
	return fmt.Sprintf("wallpaper_%s_%s.png", characterList, id)
}

// ShortcutFilename mirrors the name the backend puts on generated shortcuts
func ShortcutFilename(characterList string) string {
	return fmt.Sprintf("hanja_wallpaper_%s.shortcut", characterList)
}
