package pagination

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

// ErrImageEncoding is returned when a band cannot be encoded for embedding.
var ErrImageEncoding = errors.New("image could not be encoded for the PDF")

// Link is a clickable rectangle in source pixel coordinates.
type Link struct {
	Href       string
	X, Y, W, H float64
}

// Layer is one source image together with its placements and links.
type Layer struct {
	Image      image.Image
	Placements []Placement
	Links      []Link
}

// Metadata is written to the PDF info dictionary.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
	Created time.Time
}

// Assembler writes layers to a PDF with one image per placement.
type Assembler struct {
	Format  PageFormat
	Quality float64 // 0..1, JPEG quality of embedded bands
	Meta    Metadata
}

// Assemble renders every placement in order and writes the PDF to w. It
// returns the page count.
func (a *Assembler) Assemble(w io.Writer, layers ...Layer) (int, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: a.Format.WidthMM, Ht: a.Format.HeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	a.writeMetadata(pdf)

	quality := int(math.Round(a.Quality * 100))
	if quality < 1 {
		quality = 1
	} else if quality > 100 {
		quality = 100
	}

	placed := 0
	for li, layer := range layers {
		for pi, pl := range layer.Placements {
			band, err := crop(layer.Image, pl)
			if err != nil {
				return 0, err
			}

			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, band, &jpeg.Options{Quality: quality}); err != nil {
				return 0, fmt.Errorf("%w: %v", ErrImageEncoding, err)
			}

			for pdf.PageCount() < pl.Page {
				pdf.AddPage()
			}
			pdf.SetPage(pl.Page)

			name := fmt.Sprintf("band-%d-%d", li, pi)
			opts := fpdf.ImageOptions{ImageType: "JPG"}
			pdf.RegisterImageOptionsReader(name, opts, &buf)
			height := float64(band.Bounds().Dy()) / pl.PxPerMM
			pdf.ImageOptions(name, pl.X, pl.Y, pl.Width, height, false, opts, 0, "")

			for _, l := range layer.Links {
				placeLink(pdf, pl, l)
			}
			placed++
		}
	}
	if placed == 0 {
		return 0, ErrEmptySource
	}

	if pdf.Err() {
		return 0, fmt.Errorf("assemble pdf: %w", pdf.Error())
	}
	pages := pdf.PageCount()
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return pages, nil
}

func (a *Assembler) writeMetadata(pdf *fpdf.Fpdf) {
	if a.Meta.Title != "" {
		pdf.SetTitle(a.Meta.Title, true)
	}
	if a.Meta.Author != "" {
		pdf.SetAuthor(a.Meta.Author, true)
	}
	if a.Meta.Subject != "" {
		pdf.SetSubject(a.Meta.Subject, true)
	}
	if a.Meta.Creator != "" {
		pdf.SetCreator(a.Meta.Creator, true)
	}
	if !a.Meta.Created.IsZero() {
		pdf.SetCreationDate(a.Meta.Created)
	}
}

// placeLink adds the part of l that falls inside pl's band to the current page.
func placeLink(pdf *fpdf.Fpdf, pl Placement, l Link) {
	top := math.Max(l.Y, pl.OffsetPx)
	bottom := math.Min(l.Y+l.H, pl.OffsetPx+pl.SlicePx)
	if bottom <= top || l.W <= 0 || l.Href == "" {
		return
	}
	pdf.LinkString(
		pl.X+l.X/pl.PxPerMM,
		pl.Y+(top-pl.OffsetPx)/pl.PxPerMM,
		l.W/pl.PxPerMM,
		(bottom-top)/pl.PxPerMM,
		l.Href,
	)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// crop returns every source row the band touches. A band shorter than one
// pixel still yields the row it starts in.
func crop(img image.Image, pl Placement) (image.Image, error) {
	if img == nil {
		return nil, ErrEmptySource
	}
	b := img.Bounds()
	y0 := b.Min.Y + int(math.Floor(pl.OffsetPx))
	y1 := b.Min.Y + int(math.Ceil(pl.OffsetPx+pl.SlicePx))
	if y1 <= y0 {
		y1 = y0 + 1
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	if y0 < b.Min.Y || y1 <= y0 {
		return nil, fmt.Errorf("%w: empty band at row %d", ErrEmptySource, y0)
	}
	r := image.Rect(b.Min.X, y0, b.Max.X, y1)
	if s, ok := img.(subImager); ok {
		return s.SubImage(r), nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst, nil
}
