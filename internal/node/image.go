package node

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"lmstudio-node/internal/models"
)

// prepareImage writes img as a JPEG to a freshly created temp file and
// returns its path. Channel values are scaled from [0,1] to [0,255]. On any
// failure it returns ok=false and the caller downgrades to a text-only
// request; on success the caller owns the file and must remove it.
func (n *Node) prepareImage(img *models.Image, debug bool) (string, bool) {
	if err := img.Validate(); err != nil {
		if debug {
			n.logger.Printf("debug: error preparing image: %v\n", err)
		}
		return "", false
	}

	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := (y*img.Width + x) * 3
			rgba.SetRGBA(x, y, color.RGBA{
				R: channelByte(img.Data[idx]),
				G: channelByte(img.Data[idx+1]),
				B: channelByte(img.Data[idx+2]),
				A: 255,
			})
		}
	}

	f, err := os.CreateTemp("", "lmstudio-node-*.jpg")
	if err != nil {
		if debug {
			n.logger.Printf("debug: error preparing image: %v\n", err)
		}
		return "", false
	}

	if err := jpeg.Encode(f, rgba, nil); err != nil {
		f.Close()
		os.Remove(f.Name())
		if debug {
			n.logger.Printf("debug: error preparing image: %v\n", err)
		}
		return "", false
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", false
	}

	if debug {
		n.logger.Printf("debug: saved image to temporary file: %s\n", f.Name())
	}
	return f.Name(), true
}

func channelByte(v float32) uint8 {
	scaled := v * 255
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
