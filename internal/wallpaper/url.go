package wallpaper

import (
	"net/url"
	"strconv"

	"github.com/hanja-api/wallpaper-preview/internal/model"
)

// Endpoint paths, relative to the API origin
const (
	APIPrefix     = "/hanja-api"
	WallpaperPath = APIPrefix + "/wallpaper"
	ModelsPath    = APIPrefix + "/models"
	ShortcutPath  = APIPrefix + "/shortcut"
)

// Query parameter names
const (
	ParamOutputType    = "output_type"
	ParamCharacterList = "character_list"
	ParamDeviceModel   = "iphone_model"
	ParamCharacterID   = "character_id"
	ParamAPIURL        = "api_url"
	ParamRefreshRate   = "refresh_rate"
)

// BuildURL returns the relative wallpaper URL for the given output kind.
// A non-blank id field always wins; lastID is only used when reuse is set.
func BuildURL(kind model.OutputKind, q model.Query, lastID *int, reuse bool) string {
	params := url.Values{}
	params.Set(ParamOutputType, kind.String())
	params.Set(ParamCharacterList, q.CharacterList)
	params.Set(ParamDeviceModel, q.DeviceModel)

	if id := q.TrimmedID(); id != "" {
		params.Set(ParamCharacterID, id)
	} else if reuse && lastID != nil {
		params.Set(ParamCharacterID, strconv.Itoa(*lastID))
	}

	return WallpaperPath + "?" + params.Encode()
}

// ShortcutURL returns the relative URL of the Apple Shortcut generator.
// apiURL is the absolute API root the shortcut will call; refreshMinutes <= 0
// produces a one-shot shortcut.
func ShortcutURL(q model.Query, apiURL string, refreshMinutes int) string {
	params := url.Values{}
	params.Set(ParamAPIURL, apiURL)
	params.Set(ParamDeviceModel, q.DeviceModel)
	params.Set(ParamCharacterList, q.CharacterList)
	if refreshMinutes > 0 {
		params.Set(ParamRefreshRate, strconv.Itoa(refreshMinutes))
	}

	return ShortcutPath + "?" + params.Encode()
}
