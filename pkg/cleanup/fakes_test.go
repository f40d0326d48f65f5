package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

type fakeCatalog struct {
	images map[string][]ImageRecord
	errs   map[string]error
}

func (f *fakeCatalog) ListImages(region string) ([]ImageRecord, error) {
	if err, ok := f.errs[region]; ok {
		return nil, err
	}
	return f.images[region], nil
}

type fakeRemover struct {
	mu            sync.Mutex
	calls         []string
	failImages    map[string]string
	failSnapshots map[string]string
}

func (f *fakeRemover) DeregisterImage(region string, imageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("deregister %s %s", region, imageID))
	if reason, ok := f.failImages[imageID]; ok {
		return errors.New(reason)
	}
	return nil
}

func (f *fakeRemover) DeleteSnapshot(region string, snapshotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("delete %s %s", region, snapshotID))
	if reason, ok := f.failSnapshots[snapshotID]; ok {
		return errors.New(reason)
	}
	return nil
}

func (f *fakeRemover) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
