package lifecycle

import (
	"context"
	"testing"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		svc     *fakeService
		confirm *answer
		opts    DeleteOptions
		outcome DeleteOutcome
		message string
		wantErr error
		calls   []string
	}{
		{
			name:    "declined",
			svc:     &fakeService{status: arcgis.StatusStarted},
			confirm: &answer{ok: false},
			outcome: DeleteCancelled,
			message: "Service deletion CANCELLED!",
			calls:   []string{"probe Parcels.MapServer"},
		},
		{
			name:    "stopped service",
			svc:     &fakeService{status: arcgis.StatusStopped},
			confirm: &answer{ok: true},
			outcome: DeleteCompleted,
			message: "Successfully deleted...",
			calls: []string{
				"probe Parcels.MapServer",
				"probe Parcels.MapServer",
				"delete Parcels.MapServer",
				"probe Parcels.MapServer",
			},
		},
		{
			name:    "running service is stopped first",
			svc:     &fakeService{status: arcgis.StatusStarted},
			confirm: &answer{ok: true},
			outcome: DeleteCompleted,
			message: "Successfully stopped, and deleted...",
			calls: []string{
				"probe Parcels.MapServer",
				"probe Parcels.MapServer",
				"stop Parcels.MapServer",
				"probe Parcels.MapServer",
				"delete Parcels.MapServer",
				"probe Parcels.MapServer",
			},
		},
		{
			name:    "confirmation bypassed",
			svc:     &fakeService{status: arcgis.StatusPaused},
			opts:    DeleteOptions{SkipConfirm: true},
			outcome: DeleteCompleted,
			message: "Successfully stopped, and deleted...",
			calls: []string{
				"probe Parcels.MapServer",
				"stop Parcels.MapServer",
				"probe Parcels.MapServer",
				"delete Parcels.MapServer",
				"probe Parcels.MapServer",
			},
		},
		{
			name:    "previously deleted",
			svc:     &fakeService{status: arcgis.StatusDeleted},
			confirm: &answer{ok: true},
			outcome: DeleteAlreadyDeleted,
			message: "Can't be deleted because it was previously deleted!",
			calls:   []string{"probe Parcels.MapServer"},
		},
		{
			name:    "stop does not take",
			svc:     &fakeService{status: arcgis.StatusStarted, afterStop: arcgis.StatusStarted},
			confirm: &answer{ok: true},
			wantErr: ErrStopBeforeDelete,
			calls: []string{
				"probe Parcels.MapServer",
				"probe Parcels.MapServer",
				"stop Parcels.MapServer",
				"probe Parcels.MapServer",
			},
		},
		{
			name:    "service survives delete",
			svc:     &fakeService{status: arcgis.StatusStopped, deleteIgnore: true},
			confirm: &answer{ok: true},
			wantErr: ErrDeleteUnverified,
		},
		{
			name:    "starting",
			svc:     &fakeService{status: arcgis.StatusStarting},
			confirm: &answer{ok: true},
			wantErr: ErrDeleteBlocked,
		},
		{
			name:    "stopping",
			svc:     &fakeService{status: arcgis.StatusStopping},
			confirm: &answer{ok: true},
			wantErr: ErrDeleteBlocked,
		},
		{
			name:    "missing",
			svc:     &fakeService{missing: true},
			confirm: &answer{ok: true},
			wantErr: arcgis.ErrServiceNotFound,
		},
		{
			name:    "status unknown",
			svc:     &fakeService{probeFails: true},
			confirm: &answer{ok: true},
			wantErr: ErrStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := newFakeAdmin()
			admin.add("Parcels.MapServer", tt.svc)
			opts := []Option{}
			if tt.confirm != nil {
				opts = append(opts, WithConfirmer(tt.confirm))
			}
			m := NewManager(admin, opts...)

			res, err := m.Delete(context.Background(), arcgis.NewService("Parcels"), tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				assert.Zero(t, admin.count("delete")-boolToInt(tt.svc.deleteIgnore))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.outcome, res.Outcome)
				assert.Equal(t, tt.message, res.Message)
			}
			if tt.calls != nil {
				assert.Equal(t, tt.calls, admin.calls)
			}
		})
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestDeletePrompt(t *testing.T) {
	admin := newFakeAdmin()
	admin.add("Utilities/Water.FeatureServer", &fakeService{status: arcgis.StatusStopped})
	confirm := &answer{ok: true}
	m := NewManager(admin, WithConfirmer(confirm))

	_, err := m.Delete(context.Background(), arcgis.ParseService("Utilities/Water", "FeatureServer"), DeleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, confirm.asked)
	assert.Equal(t, "Delete 'Utilities/Water' FeatureServer service, are you sure (yes or no)? ", confirm.prompt)
}

func TestDeleteWithoutConfirmer(t *testing.T) {
	admin := newFakeAdmin()
	admin.add("Parcels.MapServer", &fakeService{status: arcgis.StatusStopped})
	m := NewManager(admin)

	_, err := m.Delete(context.Background(), arcgis.NewService("Parcels"), DeleteOptions{})
	require.Error(t, err)
	assert.Zero(t, admin.count("delete"))
}

func TestDeleteConfirmError(t *testing.T) {
	admin := newFakeAdmin()
	admin.add("Parcels.MapServer", &fakeService{status: arcgis.StatusStopped})
	m := NewManager(admin, WithConfirmer(&answer{err: errors.New("stdin closed")}))

	_, err := m.Delete(context.Background(), arcgis.NewService("Parcels"), DeleteOptions{})
	require.Error(t, err)
	assert.Zero(t, admin.count("delete"))
}

func TestDeleteRechecksStatusAfterPrompt(t *testing.T) {
	tests := []struct {
		name    string
		changed fakeService
		outcome DeleteOutcome
		wantErr error
		calls   []string
	}{
		{
			name:    "started while asking",
			changed: fakeService{status: arcgis.StatusStarted},
			outcome: DeleteCompleted,
			calls: []string{
				"probe Parcels.MapServer",
				"probe Parcels.MapServer",
				"stop Parcels.MapServer",
				"probe Parcels.MapServer",
				"delete Parcels.MapServer",
				"probe Parcels.MapServer",
			},
		},
		{
			name:    "starting while asking",
			changed: fakeService{status: arcgis.StatusStarting},
			wantErr: ErrDeleteBlocked,
		},
		{
			name:    "removed while asking",
			changed: fakeService{missing: true},
			wantErr: arcgis.ErrServiceNotFound,
		},
		{
			name:    "deleted while asking",
			changed: fakeService{status: arcgis.StatusDeleted},
			outcome: DeleteAlreadyDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := newFakeAdmin()
			svc := &fakeService{status: arcgis.StatusStopped}
			admin.add("Parcels.MapServer", svc)
			confirm := &answer{ok: true, onConfirm: func() { *svc = tt.changed }}
			m := NewManager(admin, WithConfirmer(confirm))

			res, err := m.Delete(context.Background(), arcgis.NewService("Parcels"), DeleteOptions{})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				assert.Zero(t, admin.count("delete"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			if tt.calls != nil {
				assert.Equal(t, tt.calls, admin.calls)
				assert.True(t, res.Stopped)
			}
		})
	}
}
