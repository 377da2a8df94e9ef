package parser

import (
	"testing"
	"time"

	"gallery-sync/core/errs"
	"gallery-sync/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestParser() *Parser {
	return New(Config{BasePath: "photos", PublicURL: "https://f000.backblazeb2.com/"}, "gallery-bucket", WithClock(func() time.Time { return fixedNow }))
}

func obj(key string) storage.Object {
	return storage.Object{Key: key, Size: 1, LastModified: fixedNow}
}

func TestParseFolder(t *testing.T) {
	tests := []struct {
		name      string
		folder    string
		ok        bool
		title     string
		eventDate string
	}{
		{"Dash Separated", "2026-01-05 Miku Expo", true, "Miku Expo", "2026-01-05"},
		{"Underscore Date", "2026_01_08 Test Event", true, "Test Event", "2026-01-08"},
		{"Underscore Title", "2026-02-14_Valentine_Meetup", true, "Valentine Meetup", "2026-02-14"},
		{"Inner Hyphen Kept", "2026-01-05 Miku-Expo Day-2", true, "Miku-Expo Day-2", "2026-01-05"},
		{"Leading Separators Trimmed", "2026-01-05 - Expo", true, "Expo", "2026-01-05"},
		{"Mixed Separators", "2026_03-01  Spring   Fest ", true, "Spring Fest", "2026-03-01"},
		{"No Title Falls Back", "2026-04-01", true, "2026-04-01", "2026-10-15"},
		{"Not A Date", "randomfolder", false, "", ""},
		{"Date Not Leading", "Expo 2026-01-05", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := ParseFolder(tt.folder, fixedNow)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.folder, g.FolderName)
			assert.Equal(t, tt.title, g.Title)
			assert.Equal(t, tt.eventDate, g.EventDate)
		})
	}
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.jpg", "a.JPEG", "a.png", "a.gif", "a.webp", "a.bmp", "a.TIFF"} {
		assert.True(t, IsImage(name), name)
	}
	for _, name := range []string{"a.txt", "a.mp4", "jpg", "a.jpg.zip", ".DS_Store"} {
		assert.False(t, IsImage(name), name)
	}
}

func TestDimensions(t *testing.T) {
	t.Run("Filename Token", func(t *testing.T) {
		w, h := Dimensions("IMG_1920x1080.jpg", map[string]string{"width": "1", "height": "1"})
		require.NotNil(t, w)
		require.NotNil(t, h)
		assert.Equal(t, uint32(1920), *w)
		assert.Equal(t, uint32(1080), *h)
	})

	t.Run("Metadata Fallback", func(t *testing.T) {
		w, h := Dimensions("IMG001.jpg", map[string]string{"width": "800", "height": "600"})
		require.NotNil(t, w)
		assert.Equal(t, uint32(800), *w)
		assert.Equal(t, uint32(600), *h)
	})

	t.Run("Nothing Usable", func(t *testing.T) {
		w, h := Dimensions("IMG001.jpg", nil)
		assert.Nil(t, w)
		assert.Nil(t, h)

		w, h = Dimensions("IMG001.jpg", map[string]string{"width": "wide", "height": "600"})
		assert.Nil(t, w)
		assert.Nil(t, h)

		w, h = Dimensions("IMG_0x0.jpg", nil)
		assert.Nil(t, w)
		assert.Nil(t, h)
	})
}

func TestParser_Parse(t *testing.T) {
	p := newTestParser()

	t.Run("Photo In Dated Gallery", func(t *testing.T) {
		out := p.Parse(obj("photos/2026-01-05 Miku Expo/xymiku/IMG001_1200x800.jpg"))
		require.Equal(t, KindPhoto, out.Kind)
		assert.NoError(t, out.Err())
		require.NotNil(t, out.Gallery)
		assert.Equal(t, "Miku Expo", out.Gallery.Title)
		assert.Equal(t, "2026-01-05", out.Gallery.EventDate)
		assert.Equal(t, "xymiku", out.Photo.UserHandle)
		assert.Equal(t, "2026-01-05 Miku Expo", out.Photo.FolderName)
		assert.Equal(t, "IMG001_1200x800.jpg", out.Photo.Filename)
		assert.Equal(t, uint32(1200), *out.Photo.Width)
		assert.Equal(t,
			"https://f000.backblazeb2.com/file/gallery-bucket/photos/2026-01-05+Miku+Expo/xymiku/IMG001_1200x800.jpg",
			out.Photo.PublicURL)
	})

	t.Run("Photo In Undated Folder Has No Gallery", func(t *testing.T) {
		out := p.Parse(obj("photos/randomfolder/alice/a.png"))
		require.Equal(t, KindPhoto, out.Kind)
		assert.Nil(t, out.Gallery)
		assert.Equal(t, "alice", out.Photo.UserHandle)
	})

	t.Run("Metadata Dimensions", func(t *testing.T) {
		o := obj("photos/2026-01-05 Expo/alice/a.webp")
		o.Metadata = map[string]string{"width": "300", "height": "200"}
		out := p.Parse(o)
		require.Equal(t, KindPhoto, out.Kind)
		assert.Equal(t, uint32(300), *out.Photo.Width)
		assert.Equal(t, uint32(200), *out.Photo.Height)
	})

	t.Run("Rejections", func(t *testing.T) {
		tests := []struct {
			key    string
			reason Reason
		}{
			{"photos/a.jpg", ReasonTooShallow},
			{"readme.txt", ReasonTooShallow},
			{"other/2026-01-05 Expo/alice/a.jpg", ReasonOutsideBase},
			{"photos//alice/a.jpg", ReasonEmptyFolder},
			{"photos/2026-01-05 Expo//a.jpg", ReasonEmptyHandle},
			{"photos/2026-01-05 Expo/alice/notes.txt", ReasonNotImage},
			{"photos/2026-01-05 Expo/alice/clip.mp4", ReasonNotImage},
		}
		for _, tt := range tests {
			out := p.Parse(obj(tt.key))
			assert.Equal(t, KindRejected, out.Kind, tt.key)
			assert.Equal(t, tt.reason, out.Reason, tt.key)
			assert.True(t, errs.IsMalformedKey(out.Err()), tt.key)
		}
	})

	t.Run("Nested Filename Uses Last Segment", func(t *testing.T) {
		out := p.Parse(obj("photos/2026-01-05 Expo/alice/raw/edited/a.JPG"))
		require.Equal(t, KindPhoto, out.Kind)
		assert.Equal(t, "a.JPG", out.Photo.Filename)
		assert.Equal(t, "alice", out.Photo.UserHandle)
	})
}

func TestParser_PublicURL(t *testing.T) {
	p := New(Config{PublicURL: "https://cdn.example.com", URLBucket: "public-bucket"}, "ignored")
	url := p.PublicURL("Base/2026-01-05 Event/user/a b.jpg")
	assert.Equal(t, "https://cdn.example.com/file/public-bucket/Base/2026-01-05+Event/user/a+b.jpg", url)
	assert.Contains(t, url, "2026-01-05+Event/user/a+b.jpg")
}

func TestParser_NoBasePath(t *testing.T) {
	p := New(Config{PublicURL: "https://cdn"}, "b")
	out := p.Parse(obj("anything/2026-01-05 Expo/alice/a.jpg"))
	assert.Equal(t, KindPhoto, out.Kind)
	assert.Equal(t, "", Config{}.Prefix())
	assert.Equal(t, "photos/", Config{BasePath: "photos"}.Prefix())
}
