package gallery

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/internal/pkg/event"
	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
	"github.com/retro-tech/retrosnap/pkg/idgen"
	"github.com/retro-tech/retrosnap/pkg/service/auth"
	"github.com/retro-tech/retrosnap/pkg/service/era"
	"github.com/retro-tech/retrosnap/pkg/service/exifwriter"
	"github.com/retro-tech/retrosnap/pkg/service/metadata"
	"github.com/retro-tech/retrosnap/pkg/service/pipeline"
)

func init() {
	if err := idgen.InitSqidsEncoder(); err != nil {
		panic(err)
	}
}

// ---- 测试替身 ----

type memRepo struct {
	photos map[uint]*model.Photo
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{photos: map[uint]*model.Photo{}, nextID: 1}
}

func (r *memRepo) Create(_ context.Context, p *model.Photo) error {
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.nextID++
	r.photos[p.ID] = p
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*model.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, constant.ErrNotFound
	}
	return p, nil
}

func (r *memRepo) List(_ context.Context, _ model.ListPhotosOptions) ([]*model.Photo, int64, error) {
	out := make([]*model.Photo, 0, len(r.photos))
	for _, p := range r.photos {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.photos, id)
	return nil
}

func (r *memRepo) UpdateDominantColor(_ context.Context, id uint, color string) error {
	if p, ok := r.photos[id]; ok {
		p.DominantColor = color
	}
	return nil
}

func (r *memRepo) ExistsByFilePath(_ context.Context, path string) (bool, error) {
	for _, p := range r.photos {
		if p.FilePath == path {
			return true, nil
		}
	}
	return false, nil
}

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) Save(_ context.Context, rel string, data []byte) error {
	s.files[rel] = data
	return nil
}

func (s *memStore) Get(_ context.Context, rel string) (io.ReadCloser, error) {
	data, ok := s.files[rel]
	if !ok {
		return nil, errors.New("文件不存在")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(_ context.Context, rel string) error {
	delete(s.files, rel)
	return nil
}

func (s *memStore) List(_ context.Context) ([]storage.FileInfo, error) {
	var out []storage.FileInfo
	for rel, data := range s.files {
		out = append(out, storage.FileInfo{RelPath: rel, Size: int64(len(data))})
	}
	return out, nil
}

// failingProcessor 模拟效果管线的整体失败（最终编码失败）
type failingProcessor struct{}

func (failingProcessor) Process(context.Context, *model.CapturedFrame) (*model.ProcessedImage, error) {
	return nil, constant.ErrPipelineFailure
}

// ---- 测试 ----

func grayFrame(w, h int) *model.CapturedFrame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 128
		img.Pix[i+1] = 128
		img.Pix[i+2] = 128
		img.Pix[i+3] = 255
	}
	return &model.CapturedFrame{
		Image:      img,
		Format:     "png",
		EraID:      constant.EraEarlyDigital,
		CapturedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(t *testing.T, processor pipeline.Processor, repo *memRepo, store *memStore) *Service {
	t.Helper()
	if processor == nil {
		var err error
		processor, err = pipeline.NewService(era.NewService(), pipeline.WithSeed(1))
		if err != nil {
			t.Fatalf("构造管线失败: %v", err)
		}
	}
	return NewService(
		repo,
		store,
		processor,
		era.NewService(),
		metadata.NewService(metadata.WithSeed(1)),
		exifwriter.NewWriter(),
		auth.NewPersistGate(false),
		event.NewBus(),
	)
}

func TestPersistProcessedPhoto(t *testing.T) {
	repo := newMemRepo()
	store := newMemStore()
	svc := newTestService(t, nil, repo, store)

	photo, err := svc.Persist(context.Background(), grayFrame(3000, 2000))
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	if photo.Degraded {
		t.Error("管线正常时不应标记降级")
	}
	if photo.Width > 640 || photo.Height > 480 {
		t.Errorf("输出 %dx%d 超出早期数码年代外接框", photo.Width, photo.Height)
	}
	if photo.CameraMake != "RetroTech" {
		t.Errorf("元数据厂商错误: %s", photo.CameraMake)
	}

	data, ok := store.files[photo.FilePath]
	if !ok {
		t.Fatal("存储中找不到照片文件")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("存储的照片无法解码: %v", err)
	}
	if img.Bounds().Dx() != photo.Width || img.Bounds().Dy() != photo.Height {
		t.Error("索引尺寸与文件实际尺寸不一致")
	}
}

func TestPersistFallsBackToOriginalOnPipelineFailure(t *testing.T) {
	// 管线整体失败时，保存的必须是未处理的原始帧，拍摄不丢失
	repo := newMemRepo()
	store := newMemStore()
	svc := newTestService(t, failingProcessor{}, repo, store)

	photo, err := svc.Persist(context.Background(), grayFrame(300, 200))
	if err != nil {
		t.Fatalf("回退保存失败: %v", err)
	}

	if !photo.Degraded {
		t.Error("管线失败时应标记降级")
	}
	if photo.Width != 300 || photo.Height != 200 {
		t.Errorf("降级保存应保留原始尺寸 300x200，实际 %dx%d", photo.Width, photo.Height)
	}

	data := store.files[photo.FilePath]
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("降级保存的文件无法解码: %v", err)
	}
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 200 {
		t.Errorf("降级保存的文件尺寸应为原始 300x200，实际 %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestPersistDeniedWhenReadOnly(t *testing.T) {
	repo := newMemRepo()
	store := newMemStore()
	svc := newTestService(t, nil, repo, store)
	svc.authz = auth.NewPersistGate(true)

	_, err := svc.Persist(context.Background(), grayFrame(100, 100))
	if !errors.Is(err, constant.ErrGalleryReadOnly) {
		t.Fatalf("只读模式应拒绝写入，实际错误: %v", err)
	}
	if len(store.files) != 0 {
		t.Error("被拒绝的写入不应留下文件")
	}
}

func TestDeleteRemovesIndexAndFile(t *testing.T) {
	repo := newMemRepo()
	store := newMemStore()
	svc := newTestService(t, nil, repo, store)

	photo, err := svc.Persist(context.Background(), grayFrame(400, 300))
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}

	dto, err := svc.ToDTO(photo)
	if err != nil {
		t.Fatalf("生成 DTO 失败: %v", err)
	}

	if err := svc.Delete(context.Background(), dto.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if len(repo.photos) != 0 {
		t.Error("索引未被删除")
	}
	if len(store.files) != 0 {
		t.Error("文件未被删除")
	}
}
