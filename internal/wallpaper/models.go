package wallpaper

import (
	"context"
	"log"
	"sort"
)

// DefaultDeviceModel is the backend's default model
const DefaultDeviceModel = "iphone_13_mini"

// DeviceModel is a device the backend sizes wallpapers for
type DeviceModel struct {
	Name   string
	Width  int
	Height int
}

var defaultResolutions = map[string][2]int{
	"iphone_13_mini":    {1080, 2340},
	"iphone_13":         {1170, 2532},
	"iphone_13_pro":     {1170, 2532},
	"iphone_13_pro_max": {1284, 2778},
	"iphone_14":         {1170, 2532},
	"iphone_14_plus":    {1284, 2778},
	"iphone_14_pro":     {1179, 2556},
	"iphone_14_pro_max": {1290, 2796},
	"iphone_15":         {1179, 2556},
	"iphone_15_plus":    {1290, 2796},
	"iphone_15_pro":     {1179, 2556},
	"iphone_15_pro_max": {1290, 2796},
	"iphone_16":         {1179, 2556},
	"iphone_16_plus":    {1290, 2796},
	"iphone_16_pro":     {1206, 2622},
	"iphone_16_pro_max": {1320, 2868},
}

// DefaultModels returns the built-in model table, sorted by name
func DefaultModels() []DeviceModel {
	return modelsFromMap(defaultResolutions)
}

// ModelsOrDefault asks the backend for its models and falls back to the
// built-in table when that fails.
func ModelsOrDefault(ctx context.Context, c *Client) []DeviceModel {
	models, err := c.Models(ctx)
	if err != nil {
		log.Printf("Failed to load device models, using built-in list: %v", err)
		return DefaultModels()
	}
	return models
}

// ModelNames returns just the names, preserving order
func ModelNames(models []DeviceModel) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}

func modelsFromMap(raw map[string][2]int) []DeviceModel {
	models := make([]DeviceModel, 0, len(raw))
	for name, res := range raw {
		models = append(models, DeviceModel{Name: name, Width: res[0], Height: res[1]})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}
