package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"videoflix-service/ddd/application/dto"
	"videoflix-service/ddd/domain/entity"
	"videoflix-service/ddd/domain/repo"
	"videoflix-service/ddd/domain/vo"
	"videoflix-service/pkg/errno"
)

type memRepo struct {
	videos map[int64]*entity.VideoAsset
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{videos: map[int64]*entity.VideoAsset{}, nextID: 1}
}

func (r *memRepo) Create(ctx context.Context, v *entity.VideoAsset) error {
	v.ID = r.nextID
	r.nextID++
	r.videos[v.ID] = v
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id int64) (*entity.VideoAsset, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, repo.ErrVideoNotFound
	}
	return v, nil
}

func (r *memRepo) UpdatePlaylist(ctx context.Context, id int64, p string, d int) error { return nil }
func (r *memRepo) UpdateThumbnail(ctx context.Context, id int64, p string) error       { return nil }
func (r *memRepo) UpdatePreview(ctx context.Context, id int64, p string) error         { return nil }

type recordingQueue struct {
	jobs []vo.ProcessingJob
	err  error
}

func (q *recordingQueue) Dispatch(ctx context.Context, job vo.ProcessingJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func TestCreateVideoDispatchesAllJobKinds(t *testing.T) {
	queue := &recordingQueue{}
	videoApp := NewVideoApp(newMemRepo(), NewJobDispatcher(queue))

	resp, err := videoApp.CreateVideo(context.Background(), &dto.CreateVideoRequest{
		Title:          "My Movie",
		Category:       "Action",
		SourceFilename: "my_movie.mp4",
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	if resp.ID == 0 || resp.UUID == "" {
		t.Errorf("response missing identity: %+v", resp)
	}
	if len(queue.jobs) != 3 {
		t.Fatalf("dispatched %d jobs, want 3: %v", len(queue.jobs), queue.jobs)
	}
	kinds := map[vo.JobKind]bool{}
	for _, j := range queue.jobs {
		kinds[j.Kind] = true
		if j.VideoID != resp.ID {
			t.Errorf("job %s targets video %d, want %d", j.Kind, j.VideoID, resp.ID)
		}
	}
	for _, k := range vo.AllJobKinds() {
		if !kinds[k] {
			t.Errorf("kind %s not dispatched", k)
		}
	}
}

func TestCreateVideoSourcePathInsideOwnFolder(t *testing.T) {
	repoImpl := newMemRepo()
	videoApp := NewVideoApp(repoImpl, NewJobDispatcher(&recordingQueue{}))

	resp, err := videoApp.CreateVideo(context.Background(), &dto.CreateVideoRequest{
		Title:          "My Movie",
		SourceFilename: "/uploads/../my_movie.mp4",
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}

	stored := repoImpl.videos[resp.ID]
	if !strings.HasPrefix(stored.SourcePath, "videos/My_Movie_"+stored.UUID+"/") {
		t.Errorf("source path %q outside video folder", stored.SourcePath)
	}
	if strings.Contains(stored.SourcePath, "..") {
		t.Errorf("source path %q carries traversal", stored.SourcePath)
	}
}

func TestCreateVideoValidation(t *testing.T) {
	videoApp := NewVideoApp(newMemRepo(), NewJobDispatcher(&recordingQueue{}))

	tests := []struct {
		name string
		req  dto.CreateVideoRequest
		want *errno.Errno
	}{
		{"blank title", dto.CreateVideoRequest{Title: "  ", SourceFilename: "a.mp4"}, errno.ErrTitleRequired},
		{"blank source", dto.CreateVideoRequest{Title: "T", SourceFilename: " "}, errno.ErrSourceRequired},
		{"bad category", dto.CreateVideoRequest{Title: "T", SourceFilename: "a.mp4", Category: "Noir"}, errno.ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := videoApp.CreateVideo(context.Background(), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("CreateVideo = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateVideoDefaultsCategory(t *testing.T) {
	repoImpl := newMemRepo()
	videoApp := NewVideoApp(repoImpl, NewJobDispatcher(&recordingQueue{}))

	resp, err := videoApp.CreateVideo(context.Background(), &dto.CreateVideoRequest{
		Title:          "T",
		SourceFilename: "a.mp4",
	})
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if resp.Category != "Other" {
		t.Errorf("category = %q, want Other", resp.Category)
	}
}

func TestCreateVideoSurvivesDispatchFailure(t *testing.T) {
	queue := &recordingQueue{err: errors.New("broker down")}
	videoApp := NewVideoApp(newMemRepo(), NewJobDispatcher(queue))

	if _, err := videoApp.CreateVideo(context.Background(), &dto.CreateVideoRequest{
		Title:          "T",
		SourceFilename: "a.mp4",
	}); err != nil {
		t.Errorf("CreateVideo should succeed despite dispatch failure, got %v", err)
	}
}

func TestGetVideoNotFound(t *testing.T) {
	videoApp := NewVideoApp(newMemRepo(), NewJobDispatcher(&recordingQueue{}))
	if _, err := videoApp.GetVideo(context.Background(), 9); !errors.Is(err, errno.ErrNotFound) {
		t.Errorf("GetVideo = %v, want ErrNotFound", err)
	}
}

func TestListCategories(t *testing.T) {
	videoApp := NewVideoApp(newMemRepo(), NewJobDispatcher(&recordingQueue{}))
	got := videoApp.ListCategories()
	if len(got.Categories) != len(entity.Categories) {
		t.Errorf("categories = %v", got.Categories)
	}
}
