/*
 * @Description: 将合成元数据写入 JPEG 的 EXIF 段
 * @Author: 山岚
 * @Date: 2025-09-21 16:44:09
 * @LastEditTime: 2026-07-20 11:18:36
 * @LastEditors: 山岚
 */
package exifwriter

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// Writer 把 MetadataRecord 写进 JPEG 的 EXIF 段。
// 记录里的字段名遵循 EXIF 标签约定，标签集合本身是外部标准。
type Writer struct {
	parser *jpegstructure.JpegMediaParser
}

func NewWriter() *Writer {
	return &Writer{parser: jpegstructure.NewJpegMediaParser()}
}

// Embed 解析 JPEG 段结构、填充 IFD0/Exif/GPS 三个 IFD 后重写整个文件字节。
func (w *Writer) Embed(jpegData []byte, rec *model.MetadataRecord) ([]byte, error) {
	intfc, err := w.parser.ParseBytes(jpegData)
	if err != nil {
		return nil, fmt.Errorf("解析 JPEG 段结构失败: %w", err)
	}

	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		return nil, fmt.Errorf("JPEG 解析结果类型不符")
	}

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// 管线输出的 JPEG 没有现成 EXIF 段，从头构建
		im, imErr := exifcommon.NewIfdMappingWithStandard()
		if imErr != nil {
			return nil, fmt.Errorf("构建 IFD 映射失败: %w", imErr)
		}
		ti := exif.NewTagIndex()
		rootIb = exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	if err := w.fillRootIfd(rootIb, rec); err != nil {
		return nil, err
	}
	if err := w.fillExifIfd(rootIb, rec); err != nil {
		return nil, err
	}
	if err := w.fillGpsIfd(rootIb, rec); err != nil {
		return nil, err
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("写回 EXIF 构建器失败: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return nil, fmt.Errorf("重写 JPEG 字节失败: %w", err)
	}

	return buf.Bytes(), nil
}

func (w *Writer) fillRootIfd(rootIb *exif.IfdBuilder, rec *model.MetadataRecord) error {
	ifdIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0")
	if err != nil {
		return fmt.Errorf("获取 IFD0 构建器失败: %w", err)
	}

	tags := []struct {
		name  string
		value interface{}
	}{
		{"Make", rec.CameraMake},
		{"Model", rec.CameraModel},
		{"Software", rec.Software},
		{"DateTime", rec.DateTimeOriginal},
	}
	for _, tag := range tags {
		if err := ifdIb.SetStandardWithName(tag.name, tag.value); err != nil {
			return fmt.Errorf("设置 IFD0 标签 %s 失败: %w", tag.name, err)
		}
	}
	return nil
}

func (w *Writer) fillExifIfd(rootIb *exif.IfdBuilder, rec *model.MetadataRecord) error {
	ifdIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0/Exif0")
	if err != nil {
		return fmt.Errorf("获取 Exif IFD 构建器失败: %w", err)
	}

	flash := uint16(0)
	if rec.FlashFired {
		flash = 1
	}

	exposure, err := shutterToRational(rec.ShutterSpeed)
	if err != nil {
		return err
	}

	tags := []struct {
		name  string
		value interface{}
	}{
		{"DateTimeOriginal", rec.DateTimeOriginal},
		{"DateTimeDigitized", rec.DateTimeDigitized},
		{"ISOSpeedRatings", []uint16{uint16(rec.ISO)}},
		{"Flash", []uint16{flash}},
		{"FocalLength", []exifcommon.Rational{floatToRational(rec.FocalLengthMM)}},
		{"FNumber", []exifcommon.Rational{floatToRational(rec.FNumber)}},
		{"ExposureTime", []exifcommon.Rational{exposure}},
		{"PixelXDimension", []uint32{uint32(rec.PixelXDimension)}},
		{"PixelYDimension", []uint32{uint32(rec.PixelYDimension)}},
	}
	for _, tag := range tags {
		if err := ifdIb.SetStandardWithName(tag.name, tag.value); err != nil {
			return fmt.Errorf("设置 Exif 标签 %s 失败: %w", tag.name, err)
		}
	}
	return nil
}

func (w *Writer) fillGpsIfd(rootIb *exif.IfdBuilder, rec *model.MetadataRecord) error {
	ifdIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD0/GPSInfo0")
	if err != nil {
		return fmt.Errorf("获取 GPS IFD 构建器失败: %w", err)
	}

	latRef, lonRef := "N", "E"
	if rec.GPSLatitude < 0 {
		latRef = "S"
	}
	if rec.GPSLongitude < 0 {
		lonRef = "W"
	}

	tags := []struct {
		name  string
		value interface{}
	}{
		{"GPSLatitudeRef", latRef},
		{"GPSLatitude", degreesToRationals(math.Abs(rec.GPSLatitude))},
		{"GPSLongitudeRef", lonRef},
		{"GPSLongitude", degreesToRationals(math.Abs(rec.GPSLongitude))},
	}
	for _, tag := range tags {
		if err := ifdIb.SetStandardWithName(tag.name, tag.value); err != nil {
			return fmt.Errorf("设置 GPS 标签 %s 失败: %w", tag.name, err)
		}
	}
	return nil
}

// floatToRational 以十分之一精度转有理数。
func floatToRational(v float64) exifcommon.Rational {
	return exifcommon.Rational{
		Numerator:   uint32(math.Round(v * 10)),
		Denominator: 10,
	}
}

// shutterToRational 把 "1/125" 形式的快门速度转为曝光时间有理数。
func shutterToRational(s string) (exifcommon.Rational, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return exifcommon.Rational{}, fmt.Errorf("无法解析快门速度 '%s'", s)
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return exifcommon.Rational{}, fmt.Errorf("无法解析快门速度 '%s': %w", s, err)
	}
	den, err := strconv.Atoi(parts[1])
	if err != nil || den == 0 {
		return exifcommon.Rational{}, fmt.Errorf("无法解析快门速度 '%s'", s)
	}
	return exifcommon.Rational{Numerator: uint32(num), Denominator: uint32(den)}, nil
}

// degreesToRationals 把十进制度转为度/分/秒三元组。
func degreesToRationals(v float64) []exifcommon.Rational {
	deg := math.Floor(v)
	minFloat := (v - deg) * 60
	min := math.Floor(minFloat)
	sec := (minFloat - min) * 60

	return []exifcommon.Rational{
		{Numerator: uint32(deg), Denominator: 1},
		{Numerator: uint32(min), Denominator: 1},
		{Numerator: uint32(math.Round(sec * 100)), Denominator: 100},
	}
}
