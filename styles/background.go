package styles

import (
	"strings"

	"fstyle/common"
)

var backgroundImageProps = []string{
	"background_image_url",
	"background_image_display",
	"background_image_anchor_x",
	"background_image_anchor_y",
	"background_image_tile_size",
	"background_image_width",
	"background_image_height",
	"background_image_repeat",
}

// BackgroundImageStyles places optional background image. Nothing is produced
// when image url is not set. Display mode fill covers the box, fit contains
// image in it, tile repeats image scaled to percentage of the box and
// set_scale uses explicit pixel size.
func (r *Resolver) BackgroundImageStyles(target string) {
	r.Apply(target, backgroundImageProps, func(v Values) Attrs {
		url := v.String(0)
		if url == "" {
			return nil
		}
		out := Attrs{
			"backgroundImage":    "url(" + QuoteString(url) + ")",
			"backgroundPosition": anchor(v, 2, "center") + " " + anchor(v, 3, "center"),
		}

		repeat := "no-repeat"
		switch common.BackgroundDisplay(strings.ToLower(v.String(1))) {
		case common.BackgroundDisplayFit:
			out["backgroundSize"] = "contain"
		case common.BackgroundDisplayTile:
			if size, ok := v.Float(4); ok {
				out["backgroundSize"] = formatNumber(size) + "%"
			} else {
				out["backgroundSize"] = "auto"
			}
			repeat = "repeat"
		case common.BackgroundDisplaySetScale:
			out["backgroundSize"] = scale(v, 5) + " " + scale(v, 6)
		default:
			out["backgroundSize"] = "cover"
		}
		if rp := v.String(7); rp != "" {
			repeat = strings.ToLower(rp)
		}
		out["backgroundRepeat"] = repeat
		return out
	})
}

// anchor returns keyword anchors as is and numeric ones as percents.
func anchor(v Values, i int, def string) string {
	if f, ok := v.Float(i); ok {
		return formatNumber(f) + "%"
	}
	if s := strings.ToLower(v.String(i)); s != "" {
		return s
	}
	return def
}

func scale(v Values, i int) string {
	if f, ok := v.Float(i); ok {
		return px(f)
	}
	return "auto"
}
