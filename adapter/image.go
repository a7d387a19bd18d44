package adapter

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// ErrUnsupportedImage is returned for files whose content is not a decodable raster image.
var ErrUnsupportedImage = errors.New("unsupported image format")

var imageMimes = []string{"image/png", "image/jpeg", "image/gif"}

// Image decodes raster images into arrays. Grayscale images give [height, width] and
// paletted images give their palette indices in the same shape. YCbCr images give
// [height, width, 3] and anything else is expanded to non-premultiplied RGBA,
// [height, width, 4]. Eight-bit images are stored as uint8; 16-bit grayscale and RGBA
// images are stored as float64 so no precision is lost.
//
// The content is sniffed before decoding, so the extension only selects the adapter.
type Image struct{}

var _ Adapter = (*Image)(nil)

func (*Image) Decode(path string) (*container.Array, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to detect image type")
	}
	if !mimetype.EqualsAny(mtype.String(), imageMimes...) {
		return nil, errors.WithMessagef(ErrUnsupportedImage, "%s is %s", path, mtype.String())
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to open image")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to decode %s", path)
	}

	return imageArray(img)
}

func imageArray(img image.Image) (*container.Array, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Paletted:
		data := make([]float64, 0, width*height)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)]
			for _, index := range row {
				data = append(data, float64(index))
			}
		}
		return container.NewArray(container.Uint8, []int{height, width}, data)

	case *image.Gray:
		data := make([]float64, 0, width*height)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data = append(data, float64(src.GrayAt(x, y).Y))
			}
		}
		return container.NewArray(container.Uint8, []int{height, width}, data)

	case *image.Gray16:
		data := make([]float64, 0, width*height)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data = append(data, float64(src.Gray16At(x, y).Y))
			}
		}
		return container.NewArray(container.Float64, []int{height, width}, data)

	case *image.RGBA64, *image.NRGBA64:
		data := make([]float64, 0, width*height*4)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
				data = append(data, float64(c.R), float64(c.G), float64(c.B), float64(c.A))
			}
		}
		return container.NewArray(container.Float64, []int{height, width, 4}, data)

	case *image.YCbCr:
		data := make([]float64, 0, width*height*3)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
				data = append(data, float64(c.R), float64(c.G), float64(c.B))
			}
		}
		return container.NewArray(container.Uint8, []int{height, width, 3}, data)
	}

	data := make([]float64, 0, width*height*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, float64(c.R), float64(c.G), float64(c.B), float64(c.A))
		}
	}
	return container.NewArray(container.Uint8, []int{height, width, 4}, data)
}
