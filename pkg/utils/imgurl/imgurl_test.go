package imgurl

import "testing"

func TestTransform_RewritesOwnBucketURLs(t *testing.T) {
	got := Transform(
		"https://imovia-images.s3.sa-east-1.amazonaws.com/listings/1/a.jpg",
		"amazonaws.com",
		Options{Width: 800, Quality: 75, Format: "webp"},
	)

	want := "https://imovia-images.s3.sa-east-1.amazonaws.com/listings/1/a.jpg?fm=webp&q=75&w=800"
	if got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
}

func TestTransform_LeavesForeignURLsAlone(t *testing.T) {
	in := "https://cdn.example.com/photo.jpg"
	if got := Transform(in, "amazonaws.com", Options{Width: 800}); got != in {
		t.Errorf("Transform() rewrote a foreign URL: %q", got)
	}
}

func TestTransform_NoOptionsNoQuery(t *testing.T) {
	in := "https://imovia-images.s3.sa-east-1.amazonaws.com/a.jpg"
	if got := Transform(in, "amazonaws.com", Options{}); got != in {
		t.Errorf("Transform() with empty options = %q, want unchanged", got)
	}
}
