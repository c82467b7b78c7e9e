package effects

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

func testEnv(seed int64) *Env {
	return &Env{
		CapturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Rand:       rand.New(rand.NewSource(seed)),
	}
}

// grayImage 构造一张不透明中灰图
func grayImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 128
		img.Pix[i+1] = 128
		img.Pix[i+2] = 128
		img.Pix[i+3] = 255
	}
	return img
}

// gradientImage 构造一张有边缘内容的渐变图
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 255 / (w + h)),
				A: 255,
			})
		}
	}
	return img
}

func pixelsEqual(t *testing.T, a, b image.Image) bool {
	t.Helper()
	na := imaging.Clone(a)
	nb := imaging.Clone(b)
	if !na.Bounds().Eq(nb.Bounds()) {
		return false
	}
	for i := range na.Pix {
		if na.Pix[i] != nb.Pix[i] {
			return false
		}
	}
	return true
}

func TestResizePreservesAspectRatio(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		tgtW, tgtH   int
		wantMaxRatio float64
	}{
		{name: "横幅缩小", srcW: 3000, srcH: 2000, tgtW: 640, tgtH: 480},
		{name: "竖幅缩小", srcW: 1200, srcH: 1800, tgtW: 640, tgtH: 480},
		{name: "方幅缩小", srcW: 2000, srcH: 2000, tgtW: 1600, tgtH: 1200},
		{name: "小图放大", srcW: 320, srcH: 240, tgtW: 640, tgtH: 480},
	}

	stage := NewResizeStage()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &model.EraProfile{TargetWidth: tt.tgtW, TargetHeight: tt.tgtH}
			out, err := stage.Apply(grayImage(tt.srcW, tt.srcH), profile, testEnv(1))
			if err != nil {
				t.Fatalf("缩放失败: %v", err)
			}

			b := out.Bounds()
			if b.Dx() > tt.tgtW || b.Dy() > tt.tgtH {
				t.Errorf("输出 %dx%d 超出目标外接框 %dx%d", b.Dx(), b.Dy(), tt.tgtW, tt.tgtH)
			}

			srcRatio := float64(tt.srcW) / float64(tt.srcH)
			dstRatio := float64(b.Dx()) / float64(b.Dy())
			if math.Abs(srcRatio-dstRatio) > 0.02 {
				t.Errorf("纵横比改变: 输入 %.4f 输出 %.4f", srcRatio, dstRatio)
			}
		})
	}
}

func TestColorBalanceIdentity(t *testing.T) {
	// 中性色温 + 单位饱和度/对比度必须逐像素等于输入
	profile := &model.EraProfile{
		ColorTemperature: 6500,
		Saturation:       1,
		Contrast:         1,
	}

	src := gradientImage(64, 48)
	out, err := NewColorBalanceStage().Apply(src, profile, testEnv(1))
	if err != nil {
		t.Fatalf("色彩阶段失败: %v", err)
	}

	if !pixelsEqual(t, src, out) {
		t.Error("恒等参数下输出与输入不一致")
	}
}

func TestColorBalanceWarmShiftsRed(t *testing.T) {
	profile := &model.EraProfile{
		ColorTemperature: 3200, // 暖色温应压低蓝通道
		Saturation:       1,
		Contrast:         1,
	}

	out, err := NewColorBalanceStage().Apply(grayImage(16, 16), profile, testEnv(1))
	if err != nil {
		t.Fatalf("色彩阶段失败: %v", err)
	}

	n := imaging.Clone(out)
	if n.Pix[2] >= n.Pix[0] {
		t.Errorf("暖色温下蓝通道(%d)应低于红通道(%d)", n.Pix[2], n.Pix[0])
	}
}

func TestSharpenZeroIsNoop(t *testing.T) {
	src := gradientImage(32, 32)
	out, err := NewSharpenStage().Apply(src, &model.EraProfile{Sharpness: 0}, testEnv(1))
	if err != nil {
		t.Fatalf("锐化阶段失败: %v", err)
	}
	if !pixelsEqual(t, src, out) {
		t.Error("锐化强度为 0 时输出应与输入一致")
	}
}

func TestNoiseKeepsDimensionsAndAltersPixels(t *testing.T) {
	profile := &model.EraProfile{NoiseLevel: 0.5}
	src := grayImage(64, 48)
	stage := NewNoiseStage()

	out1, err := stage.Apply(src, profile, testEnv(7))
	if err != nil {
		t.Fatalf("噪点阶段失败: %v", err)
	}
	out2, err := stage.Apply(src, profile, testEnv(99))
	if err != nil {
		t.Fatalf("噪点阶段失败: %v", err)
	}

	if !out1.Bounds().Eq(src.Bounds()) || !out2.Bounds().Eq(src.Bounds()) {
		t.Error("噪点阶段不得改变尺寸")
	}
	if pixelsEqual(t, src, out1) {
		t.Error("噪点强度 0.5 时输出不应等于输入")
	}
	// 不同随机序列应产生不同的噪点场
	if pixelsEqual(t, out1, out2) {
		t.Error("两次独立调用产生了相同的噪点场")
	}
}

func TestVignetteDarkensCornersNotCenter(t *testing.T) {
	profile := &model.EraProfile{VignetteIntensity: 0.6}
	src := grayImage(100, 80)

	out, err := NewVignetteStage().Apply(src, profile, testEnv(1))
	if err != nil {
		t.Fatalf("暗角阶段失败: %v", err)
	}

	n := imaging.Clone(out)
	corner := n.NRGBAAt(1, 1)
	center := n.NRGBAAt(50, 40)

	if corner.R >= 128 {
		t.Errorf("角部应被压暗，实际 R=%d", corner.R)
	}
	if center.R < 120 {
		t.Errorf("中心应基本不变，实际 R=%d", center.R)
	}
}

func TestMotionBlurGatedByProfile(t *testing.T) {
	src := gradientImage(80, 60)
	stage := NewMotionBlurStage()

	out, err := stage.Apply(src, &model.EraProfile{HasMotionBlur: false}, testEnv(3))
	if err != nil {
		t.Fatalf("运动模糊阶段失败: %v", err)
	}
	if !pixelsEqual(t, src, out) {
		t.Error("未启用运动模糊时输出应与输入一致")
	}

	blurred, err := stage.Apply(src, &model.EraProfile{HasMotionBlur: true}, testEnv(3))
	if err != nil {
		t.Fatalf("运动模糊阶段失败: %v", err)
	}
	if !blurred.Bounds().Eq(src.Bounds()) {
		t.Error("运动模糊不得改变尺寸")
	}
	if pixelsEqual(t, src, blurred) {
		t.Error("启用运动模糊后输出应与输入不同")
	}
}

func TestDateTimeOverlayMarksBottomRight(t *testing.T) {
	stage, err := NewDateTimeOverlayStage()
	if err != nil {
		t.Fatalf("构造水印阶段失败: %v", err)
	}

	src := grayImage(400, 300)
	profile := &model.EraProfile{ID: constant.EraEarlyDigital}

	out, err := stage.Apply(src, profile, testEnv(1))
	if err != nil {
		t.Fatalf("水印阶段失败: %v", err)
	}

	n := imaging.Clone(out)
	// 右下四分之一区域必须有被水印改动的像素
	changed := false
	for y := 150; y < 300 && !changed; y++ {
		for x := 200; x < 400; x++ {
			p := n.NRGBAAt(x, y)
			if p.R != 128 || p.G != 128 || p.B != 128 {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("右下角区域没有发现水印内容")
	}

	// 左上四分之一区域必须原样
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			p := n.NRGBAAt(x, y)
			if p.R != 128 || p.G != 128 || p.B != 128 {
				t.Fatalf("水印不应触碰左上区域，(%d,%d) 被改动", x, y)
			}
		}
	}
}
