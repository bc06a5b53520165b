package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"google.golang.org/api/drive/v3"
)

const (
	backupFolderName = "daybook-backups"
	snapshotMime     = "application/x-sqlite3"
)

// Store is the slice of the database the backup service needs: the path of
// the on-disk file and the checkpoint that makes it safe to copy.
type Store interface {
	Path() string
	Checkpoint() error
}

// Service pushes and pulls database snapshots to a Drive app folder. All
// operations serialize on an internal mutex so a backup, a restore, and a
// caller-issued checkpoint can't interleave on the database file.
type Service struct {
	client *Client
	store  Store
	mu     sync.Mutex
}

// NewService creates a backup service over an authenticated Drive client
func NewService(client *Client, store Store) *Service {
	return &Service{client: client, store: store}
}

func (s *Service) folderID() (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false and 'root' in parents", backupFolderName)

	fileList, err := s.client.Service().Files.List().
		Q(query).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return "", err
	}

	if len(fileList.Files) > 0 {
		return fileList.Files[0].Id, nil
	}

	fileMetadata := &drive.File{
		Name:     backupFolderName,
		MimeType: "application/vnd.google-apps.folder",
		Parents:  []string{"root"},
	}

	folder, err := s.client.Service().Files.Create(fileMetadata).
		Fields("id").
		Do()
	if err != nil {
		return "", err
	}

	return folder.Id, nil
}

func (s *Service) listSnapshots() ([]*drive.File, error) {
	folderID, err := s.folderID()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType!='application/vnd.google-apps.folder'", folderID)
	fileList, err := s.client.Service().Files.List().
		Q(query).
		Fields("files(id, name, modifiedTime, size)").
		Do()
	if err != nil {
		return nil, err
	}

	files := fileList.Files
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedTime > files[j].ModifiedTime
	})
	return files, nil
}

// LastBackupTime returns when the newest snapshot was written. The second
// return is false when no backup exists yet.
func (s *Service) LastBackupTime(ctx context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots, err := s.listSnapshots()
	if err != nil {
		return time.Time{}, false, err
	}
	if len(snapshots) == 0 {
		return time.Time{}, false, nil
	}

	t, err := time.Parse(time.RFC3339, snapshots[0].ModifiedTime)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad snapshot timestamp: %w", err)
	}
	return t, true, nil
}

// BackupDatabase checkpoints the store and uploads the database file as a
// new snapshot. jobID ties log lines to the scheduler run that issued the
// backup.
func (s *Service) BackupDatabase(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Checkpoint(); err != nil {
		return fmt.Errorf("pre-backup checkpoint: %w", err)
	}

	file, err := os.Open(s.store.Path())
	if err != nil {
		return fmt.Errorf("open database file: %w", err)
	}
	defer file.Close()

	folderID, err := s.folderID()
	if err != nil {
		return err
	}

	name := fmt.Sprintf("daybook-%s.db", time.Now().UTC().Format("20060102-150405"))
	fileMetadata := &drive.File{
		Name:     name,
		Parents:  []string{folderID},
		MimeType: snapshotMime,
	}

	uploaded, err := s.client.Service().Files.Create(fileMetadata).
		Media(file).
		Fields("id, size").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	slog.Info("database backed up",
		"job_id", jobID,
		"snapshot", name,
		"drive_file_id", uploaded.Id,
		"size", uploaded.Size,
	)
	return nil
}

// RestoreDatabase downloads the newest snapshot over the local database
// file. The file is written to a temp path first and renamed into place so
// a failed download can't leave a truncated database. The caller must
// reopen the store afterwards.
func (s *Service) RestoreDatabase(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots, err := s.listSnapshots()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshot to restore")
	}
	newest := snapshots[0]

	resp, err := s.client.Service().Files.Get(newest.Id).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("download snapshot: %w", err)
	}
	defer resp.Body.Close()

	tmpPath := s.store.Path() + ".restore"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create restore file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write restore file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.store.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace database file: %w", err)
	}

	slog.Info("database restored",
		"job_id", jobID,
		"snapshot", newest.Name,
	)
	return nil
}

// PruneSnapshots deletes all but the newest keep snapshots
func (s *Service) PruneSnapshots(ctx context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}

	snapshots, err := s.listSnapshots()
	if err != nil {
		return err
	}

	for _, old := range snapshots[min(keep, len(snapshots)):] {
		if err := s.client.Service().Files.Delete(old.Id).Context(ctx).Do(); err != nil {
			return fmt.Errorf("delete snapshot %s: %w", old.Name, err)
		}
		slog.Info("pruned old snapshot", "snapshot", old.Name)
	}
	return nil
}
