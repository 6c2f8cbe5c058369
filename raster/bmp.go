// Copyright 2024 The quilt Authors. All rights reserved.

package raster

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	bitsPerPixel  = 24
)

var (
	ErrInvalidSignature       = errors.New("bmp: invalid signature")
	ErrUnsupportedDepth       = errors.New("bmp: only 24 bits per pixel is supported")
	ErrUnsupportedCompression = errors.New("bmp: only uncompressed images are supported")
	ErrUnsupportedPlanes      = errors.New("bmp: only one color plane is supported")
	ErrUnsupportedHeader      = errors.New("bmp: unsupported info header")
	ErrDimensions             = errors.New("bmp: image dimensions out of range")
)

// RowOrder says how rows are laid out in the file.
type RowOrder uint8

const (
	// TopDown files have a negative height field.
	TopDown RowOrder = iota
	// BottomUp files have a positive height field.
	BottomUp
)

func (o RowOrder) String() string {
	if o == BottomUp {
		return "bottom-up"
	}
	return "top-down"
}

type fileHeader struct {
	Signature [2]byte
	Size      uint32
	Reserved  [2]uint16
	Offset    uint32
}

type infoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitsPerPixel  uint16
	Compression   uint32
	ImageSize     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ColorsUsed    uint32
	ColorsImport  uint32
}

// rowStride is the padded length of one row of pixel data.
func rowStride(width int) int {
	return (width*3 + 3) &^ 3
}

// Decode reads an uncompressed 24-bit BMP. Both row orders are accepted;
// the order found in the file is returned alongside the raster.
func Decode(r io.ReadSeeker) (*Raster, RowOrder, error) {
	var fh fileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, 0, fmt.Errorf("bmp: reading file header: %w", err)
	}
	if fh.Signature != [2]byte{'B', 'M'} {
		return nil, 0, ErrInvalidSignature
	}
	var ih infoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, 0, fmt.Errorf("bmp: reading info header: %w", err)
	}
	if ih.Size < infoHeaderLen {
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrUnsupportedHeader, ih.Size)
	}
	if ih.Planes != 1 {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedPlanes, ih.Planes)
	}
	if ih.BitsPerPixel != bitsPerPixel {
		return nil, 0, fmt.Errorf("%w: got %d", ErrUnsupportedDepth, ih.BitsPerPixel)
	}
	if ih.Compression != 0 {
		return nil, 0, fmt.Errorf("%w: type %d", ErrUnsupportedCompression, ih.Compression)
	}
	order, height := BottomUp, int64(ih.Height)
	if height < 0 {
		order, height = TopDown, -height
	}
	if ih.Width < 0 || height > math.MaxInt32 {
		return nil, 0, fmt.Errorf("%w: %dx%d", ErrDimensions, ih.Width, ih.Height)
	}
	width := int(ih.Width)
	if width == 0 || height == 0 {
		// Raster cannot hold rows of zero width
		return New(0, 0), order, nil
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("bmp: seeking to end: %w", err)
	}
	stride := int64(rowStride(width))
	if avail := end - int64(fh.Offset); avail < 0 || avail/height < stride {
		return nil, 0, fmt.Errorf("%w: %dx%d needs more than the %d bytes present",
			ErrDimensions, width, height, end)
	}
	if _, err := r.Seek(int64(fh.Offset), io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("bmp: seeking to pixel data: %w", err)
	}
	img := New(width, int(height))
	br := bufio.NewReader(r)
	row := make([]byte, stride)
	for i := 0; i < int(height); i++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, 0, fmt.Errorf("bmp: reading row %d: %w", i, err)
		}
		y := i
		if order == BottomUp {
			y = int(height) - 1 - i
		}
		dst := img.Pixels[y*width : (y+1)*width]
		for x := range dst {
			dst[x] = Pixel{Blue: row[3*x], Green: row[3*x+1], Red: row[3*x+2]}
		}
	}
	return img, order, nil
}

// Encode writes img as a top-down, uncompressed 24-bit BMP.
func Encode(w io.Writer, img *Raster) error {
	width, height := img.Width, img.Height()
	stride := rowStride(width)
	dataLen := int64(stride) * int64(height)
	if width > math.MaxInt32 || height > math.MaxInt32 ||
		dataLen+fileHeaderLen+infoHeaderLen > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	fh := fileHeader{
		Signature: [2]byte{'B', 'M'},
		Size:      uint32(fileHeaderLen + infoHeaderLen + dataLen),
		Offset:    fileHeaderLen + infoHeaderLen,
	}
	ih := infoHeader{
		Size:         infoHeaderLen,
		Width:        int32(width),
		Height:       -int32(height),
		Planes:       1,
		BitsPerPixel: bitsPerPixel,
		ImageSize:    uint32(dataLen),
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &fh); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, &ih); err != nil {
		return err
	}
	row := make([]byte, stride)
	for y := 0; y < height; y++ {
		for x, p := range img.Pixels[y*width : (y+1)*width] {
			row[3*x], row[3*x+1], row[3*x+2] = p.Blue, p.Green, p.Red
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFile decodes the named BMP file.
func ReadFile(name string) (*Raster, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

// WriteFile encodes img into the named file, replacing it.
func WriteFile(name string, img *Raster) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
