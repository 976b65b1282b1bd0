// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package workspace

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/joelnust/namsa/internal/activity"
	"github.com/joelnust/namsa/internal/backend"
	"github.com/joelnust/namsa/internal/lookup"
	"github.com/joelnust/namsa/internal/platform/ctxutil"
	"github.com/joelnust/namsa/internal/profile"
	"github.com/joelnust/namsa/internal/signal"
)

// fakeAPI is an in-memory registry. Every hook is optional.
type fakeAPI struct {
	mu sync.Mutex

	documents   func(ctx context.Context) (*profile.Bundle, error)
	save        func(ctx context.Context, method string, draft profile.Draft) (*profile.Record, error)
	upload      func(ctx context.Context, category profile.Category, file *profile.File, title string) error
	lookupError error

	calls   map[string]int
	tokens  []string
	uploads []uploadCall
	saved   []profile.Draft
}

type uploadCall struct {
	category profile.Category
	file     *profile.File
	title    string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (api *fakeAPI) count(name string, ctx context.Context) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.calls[name]++
	api.tokens = append(api.tokens, ctxutil.GetAccessToken(ctx))
}

func (api *fakeAPI) callCount(name string) int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.calls[name]
}

func (api *fakeAPI) table(ctx context.Context, name string, entries ...lookup.Entry) (lookup.Table, error) {
	api.count(name, ctx)
	if api.lookupError != nil {
		return nil, api.lookupError
	}
	return lookup.Table(entries), nil
}

func (api *fakeAPI) GetTitles(ctx context.Context) (lookup.Table, error) {
	return api.table(ctx, "titles", lookup.Entry{ID: 1, Label: "Mr"}, lookup.Entry{ID: 2, Label: "Ms"})
}

func (api *fakeAPI) GetBankNames(ctx context.Context) (lookup.Table, error) {
	return api.table(ctx, "bank_names", lookup.Entry{ID: 7, Label: "Bank Windhoek"})
}

func (api *fakeAPI) GetMaritalStatuses(ctx context.Context) (lookup.Table, error) {
	return api.table(ctx, "marital_statuses", lookup.Entry{ID: 1, Label: "Single"})
}

func (api *fakeAPI) GetMemberCategories(ctx context.Context) (lookup.Table, error) {
	return api.table(ctx, "member_categories", lookup.Entry{ID: 3, Label: "Composer"})
}

func (api *fakeAPI) GetGenders(ctx context.Context) (lookup.Table, error) {
	return api.table(ctx, "genders", lookup.Entry{ID: 2, Label: "Female"})
}

func (api *fakeAPI) GetDocuments(ctx context.Context) (*profile.Bundle, error) {
	api.count("documents", ctx)
	if api.documents == nil {
		return nil, &backend.Error{Op: "get_documents", StatusCode: http.StatusNotFound}
	}
	return api.documents(ctx)
}

func (api *fakeAPI) CreateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error) {
	return api.saveProfile(ctx, http.MethodPost, draft)
}

func (api *fakeAPI) UpdateProfile(ctx context.Context, draft profile.Draft) (*profile.Record, error) {
	return api.saveProfile(ctx, http.MethodPut, draft)
}

func (api *fakeAPI) saveProfile(ctx context.Context, method string, draft profile.Draft) (*profile.Record, error) {
	api.count(method, ctx)
	api.mu.Lock()
	api.saved = append(api.saved, draft)
	api.mu.Unlock()

	if api.save == nil {
		return &profile.Record{ID: 1, FirstName: draft.FirstName, Status: profile.StatusPending}, nil
	}
	return api.save(ctx, method, draft)
}

func (api *fakeAPI) UploadPassportPhoto(ctx context.Context, file *profile.File, title string) error {
	return api.uploadFile(ctx, profile.CategoryPassportPhoto, file, title)
}

func (api *fakeAPI) UploadIDDocument(ctx context.Context, file *profile.File, title string) error {
	return api.uploadFile(ctx, profile.CategoryIDDocument, file, title)
}

func (api *fakeAPI) UploadBankConfirmationLetter(ctx context.Context, file *profile.File, title string) error {
	return api.uploadFile(ctx, profile.CategoryBankConfirmationLetter, file, title)
}

func (api *fakeAPI) UploadProofOfPayment(ctx context.Context, file *profile.File, title string) error {
	return api.uploadFile(ctx, profile.CategoryProofOfPayment, file, title)
}

func (api *fakeAPI) uploadFile(ctx context.Context, category profile.Category, file *profile.File, title string) error {
	api.count("upload_"+string(category), ctx)
	api.mu.Lock()
	api.uploads = append(api.uploads, uploadCall{category: category, file: file, title: title})
	api.mu.Unlock()

	if api.upload == nil {
		return nil
	}
	return api.upload(ctx, category, file, title)
}

// fakeRecorder collects activity entries.
type fakeRecorder struct {
	mu      sync.Mutex
	entries []activity.Entry
}

func (recorder *fakeRecorder) Record(_ context.Context, entry activity.Entry) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.entries = append(recorder.entries, entry)
}

func (recorder *fakeRecorder) all() []activity.Entry {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]activity.Entry(nil), recorder.entries...)
}

// # Fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	api      *fakeAPI
	hub      *signal.Hub
	recorder *fakeRecorder
	deps     Dependencies
}

func newFixture() *fixture {
	api := newFakeAPI()
	hub := signal.NewHub(testLogger())
	recorder := &fakeRecorder{}

	return &fixture{
		api:      api,
		hub:      hub,
		recorder: recorder,
		deps: Dependencies{
			API:        api,
			Subscriber: hub,
			Recorder:   recorder,
			Logger:     testLogger(),
			FeedSize:   16,
		},
	}
}

func (f *fixture) open() *Workspace {
	return New("42", "artist-token", f.deps)
}

func existingBundle() *profile.Bundle {
	return &profile.Bundle{
		Profile: &profile.Record{
			ID:          9,
			FirstName:   "Ndapewa",
			Surname:     "Shikongo",
			Email:       "ndapewa@example.com",
			PhoneNumber: "+264811234567",
			Title:       &profile.Reference{ID: 2, Label: "Ms"},
			BankName:    &profile.Reference{ID: 7, Label: "Bank Windhoek"},
			Status:      profile.StatusApproved,
			ArtistID:    "ART-0009",
			Notes:       "Welcome aboard",
		},
		Documents: map[profile.Category]profile.Document{
			profile.CategoryIDDocument: {Title: "ID Document", URL: "https://files.namsa.org.na/d/9-id.pdf"},
		},
	}
}

func pdf(name string) *profile.File {
	return &profile.File{Name: name, ContentType: "application/pdf", Data: make([]byte, 512*1024)}
}
