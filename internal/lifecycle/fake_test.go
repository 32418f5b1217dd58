package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/cockroachdb/errors"
)

// fakeService scripts how one service reacts to actions.
type fakeService struct {
	status     arcgis.Status
	missing    bool
	probeFails bool
	// afterStart and afterStop override the state an action leaves behind.
	afterStart   arcgis.Status
	afterStop    arcgis.Status
	deleteIgnore bool
	actionErr    error
}

type fakeAdmin struct {
	services map[string]*fakeService
	order    []string
	calls    []string
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{services: make(map[string]*fakeService)}
}

// add registers a service under "folder/name.Type" or "name.Type".
func (f *fakeAdmin) add(key string, svc *fakeService) {
	f.services[key] = svc
	f.order = append(f.order, key)
}

func key(svc *arcgis.Service) string {
	return svc.Path() + "." + svc.Type
}

func (f *fakeAdmin) record(op string, svc *arcgis.Service) {
	f.calls = append(f.calls, op+" "+key(svc))
}

func (f *fakeAdmin) count(op string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

func (f *fakeAdmin) Probe(_ context.Context, svc *arcgis.Service) arcgis.Probe {
	f.record("probe", svc)
	s, ok := f.services[key(svc)]
	switch {
	case !ok || s.missing:
		svc.Status = ""
		return arcgis.Probe{Kind: arcgis.ProbeNotFound, Err: arcgis.ErrServiceNotFound}
	case s.probeFails:
		svc.Status = ""
		return arcgis.Probe{Kind: arcgis.ProbeFailed, Err: errors.New("connection reset")}
	}
	svc.Status = s.status
	return arcgis.Probe{Kind: arcgis.ProbeKnown, Status: s.status}
}

func (f *fakeAdmin) StartService(_ context.Context, svc *arcgis.Service) error {
	f.record("start", svc)
	s := f.services[key(svc)]
	if s.actionErr != nil {
		return s.actionErr
	}
	s.status = arcgis.StatusStarted
	if s.afterStart != "" {
		s.status = s.afterStart
	}
	return nil
}

func (f *fakeAdmin) StopService(_ context.Context, svc *arcgis.Service) error {
	f.record("stop", svc)
	s := f.services[key(svc)]
	if s.actionErr != nil {
		return s.actionErr
	}
	s.status = arcgis.StatusStopped
	if s.afterStop != "" {
		s.status = s.afterStop
	}
	return nil
}

func (f *fakeAdmin) DeleteService(_ context.Context, svc *arcgis.Service) error {
	f.record("delete", svc)
	s := f.services[key(svc)]
	if s.actionErr != nil {
		return s.actionErr
	}
	if !s.deleteIgnore {
		s.missing = true
	}
	return nil
}

func (f *fakeAdmin) Describe(ctx context.Context, svc *arcgis.Service) (*arcgis.Service, error) {
	f.record("describe", svc)
	if _, ok := f.services[key(svc)]; !ok {
		return nil, fmt.Errorf("describe %s: %w", svc, arcgis.ErrServiceNotFound)
	}
	f.Probe(ctx, svc)
	d := *svc
	d.Description = "described " + svc.ServiceName
	return &d, nil
}

func (f *fakeAdmin) ListServices(ctx context.Context) (*arcgis.Catalog, error) {
	f.calls = append(f.calls, "list")
	cat := &arcgis.Catalog{}
	for _, k := range f.order {
		ref, typ, _ := strings.Cut(k, ".")
		svc := arcgis.ParseService(ref, typ)
		f.Probe(ctx, svc)
		cat.Services = append(cat.Services, svc)
	}
	return cat, nil
}

// recorder is a Reporter that keeps everything it is told.
type recorder struct {
	notices  []string
	results  []Result
	restarts []RestartResult
}

func (r *recorder) Notice(msg string)         { r.notices = append(r.notices, msg) }
func (r *recorder) Result(res Result)         { r.results = append(r.results, res) }
func (r *recorder) Restart(res RestartResult) { r.restarts = append(r.restarts, res) }

type answer struct {
	ok     bool
	err    error
	asked  int
	prompt string
	// onConfirm runs while the question is open
	onConfirm func()
}

func (a *answer) Confirm(prompt string) (bool, error) {
	a.asked++
	a.prompt = prompt
	if a.onConfirm != nil {
		a.onConfirm()
	}
	return a.ok, a.err
}
