package appearance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWallpaper(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want WallpaperClass
	}{
		{
			name: "mode suffix -l",
			uri:  "file:///home/u/Pictures/sunset-l.jpg",
			want: WallpaperPaired,
		},
		{
			name: "mode suffix -d",
			uri:  "file:///home/u/Pictures/sunset-d.png",
			want: WallpaperPaired,
		},
		{
			name: "mode suffix -light",
			uri:  "file:///home/u/Pictures/forest-light.webp",
			want: WallpaperPaired,
		},
		{
			name: "mode suffix -dark",
			uri:  "file:///home/u/Pictures/forest-dark.webp",
			want: WallpaperPaired,
		},
		{
			name: "mode suffix -day",
			uri:  "file:///home/u/Pictures/city-day.jpg",
			want: WallpaperPaired,
		},
		{
			name: "mode suffix -night",
			uri:  "file:///home/u/Pictures/city-night.jpg",
			want: WallpaperPaired,
		},
		{
			name: "dynamic xml descriptor",
			uri:  "file:///usr/share/backgrounds/gnome/adwaita-timed.xml",
			want: WallpaperPaired,
		},
		{
			name: "conventional background file",
			uri:  "file:///home/u/.config/background",
			want: WallpaperSpecial,
		},
		{
			name: "conventional background file with extension",
			uri:  "file:///home/u/.config/background.jpg",
			want: WallpaperSpecial,
		},
		{
			name: "special wins over paired suffix",
			uri:  "file:///home/u/.config/background-dark.jpg",
			want: WallpaperSpecial,
		},
		{
			name: "plain wallpaper",
			uri:  "file:///home/u/Pictures/sunset.jpg",
			want: WallpaperPlain,
		},
		{
			name: "suffix without extension stays plain",
			uri:  "file:///home/u/Pictures/sunset-dark",
			want: WallpaperPlain,
		},
		{
			name: "suffix in directory name stays plain",
			uri:  "file:///home/u/dark-wallpapers/sunset.jpg",
			want: WallpaperPlain,
		},
		{
			name: "empty uri",
			uri:  "",
			want: WallpaperPlain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyWallpaper(tt.uri))
		})
	}
}

func TestURIPathRoundTrip(t *testing.T) {
	assert.Equal(t, "/home/u/.config/background", URIToPath("file:///home/u/.config/background"))
	assert.Equal(t, "/home/u/a.png", URIToPath("/home/u/a.png"))
	assert.Equal(t, "file:///home/u/a.png", PathToURI("/home/u/a.png"))
	assert.Equal(t, "file:///home/u/a.png", PathToURI("file:///home/u/a.png"))
}
