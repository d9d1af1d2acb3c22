package henke

import (
	"context"
	"errors"
	"fmt"
	"henke-client/internal/components/telemetry"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeService imitates the cgi endpoints: POSTs are answered by `pages`, GETs by
// `files`, anything else is a 404.
type fakeService struct {
	server *httptest.Server
	pages  map[string]func(form url.Values) string
	files  map[string]func(path string) (string, bool)

	mutex sync.Mutex
	posts []url.Values
	gets  []string
}

func newFakeService(t testing.TB) *fakeService {
	f := &fakeService{
		pages: map[string]func(url.Values) string{},
		files: map[string]func(string) (string, bool){},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			http.Error(w, "unexpected content type", http.StatusBadRequest)
			return
		}
		err := r.ParseForm()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mutex.Lock()
		f.posts = append(f.posts, r.PostForm)
		f.mutex.Unlock()

		page, ok := f.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page(r.PostForm))
	case http.MethodGet:
		f.mutex.Lock()
		f.gets = append(f.gets, r.URL.Path)
		f.mutex.Unlock()

		for prefix, file := range f.files {
			if !strings.HasPrefix(r.URL.Path, prefix) {
				continue
			}
			body, ok := file(r.URL.Path)
			if ok {
				fmt.Fprint(w, body)
				return
			}
		}
		http.NotFound(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (f *fakeService) page(endpoint, body string) {
	f.pages[endpoint] = func(url.Values) string { return body }
}

func (f *fakeService) file(path, body string) {
	f.files[path] = func(requested string) (string, bool) {
		return body, requested == path
	}
}

func newTestClient(t testing.TB, f *fakeService) (*Client, *telemetry.RecordingAPI) {
	rec := &telemetry.RecordingAPI{}
	client, err := NewClient(ClientOptions{
		BaseUrl:           f.server.URL,
		RequestsPerSecond: -1,
		Telemetry:         rec,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client, rec
}

func TestNewClient(t *testing.T) {
	rec := &telemetry.RecordingAPI{}

	client, err := NewClient(ClientOptions{Telemetry: rec})
	require.NoError(t, err)
	require.Equal(t, DefaultBaseUrl, client.BaseUrl().String())

	_, err = NewClient(ClientOptions{BaseUrl: "henke.lbl.gov", Telemetry: rec})
	require.Error(t, err)

	require.Panics(t, func() {
		NewClient(ClientOptions{})
	})
}

func TestFilterRoundTrip(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointFilter, filterResultHtml)
	f.file("/tmp/xray2051.dat", filterAlDat)
	client, _ := newTestClient(t, f)

	res, err := client.Filter(context.Background(), FilterRequest{
		Formula:   "Al",
		Thickness: 0.2,
		Energy:    Sweep{Min: 20, Max: 220, Points: 200},
	})
	require.NoError(t, err)

	expected := [][]float64{
		{20, 0.50342},
		{40, 0.21811},
		{60, 0.10221},
	}
	diff := cmp.Diff(expected, res.Table.Rows)
	if diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "Al - 200.0 nm", res.Meta.Title)
	require.Equal(t, "Transmittivity", res.Meta.YLabel)
	require.Equal(t, AxisEnergy, res.Meta.Axis)

	require.Len(t, f.posts, 1)
	form := f.posts[0]
	require.Equal(t, "Al", form.Get("Formula"))
	require.Equal(t, "Energy", form.Get("Scan"))
	require.Equal(t, "20", form.Get("Min"))
	require.Equal(t, "220", form.Get("Max"))
	require.Equal(t, "200", form.Get("Npts"))
	require.Equal(t, "Enter Formula", form.Get("Material"))
	require.Equal(t, []string{"/tmp/xray2051.dat"}, f.gets)
}

func TestFilterLinkNotFound(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointFilter, errorPageHtml)
	client, rec := newTestClient(t, f)

	res, err := client.Filter(context.Background(), FilterRequest{
		Formula:   "Qq",
		Thickness: 0.2,
		Energy:    Sweep{Min: 20, Max: 220, Points: 200},
	})
	require.True(t, errors.Is(err, ErrLinkNotFound))
	require.Empty(t, res.Table.Rows)
	require.Empty(t, f.gets)
	require.NotEmpty(t, rec.Reports("warning"))
}

func TestBindingEnergy(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointBindingEnergy, bindingFeHtml)
	client, _ := newTestClient(t, f)

	result, err := client.BindingEnergy(context.Background(), BindingEnergyRequest{Element: "Fe", Energy: 100})
	require.NoError(t, err)
	require.Equal(t, 3.9418e-02, *result.Delta)
	require.Len(t, result.Edges, 6)

	require.Len(t, f.posts, 1)
	require.Equal(t, "Fe", f.posts[0].Get("Element"))
	require.Equal(t, "100", f.posts[0].Get("Energy"))
	require.Empty(t, f.gets)
}

func TestBindingEnergyNotFound(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointBindingEnergy, bindingUnknownHtml)
	client, rec := newTestClient(t, f)

	_, err := client.BindingEnergy(context.Background(), BindingEnergyRequest{Element: "Xx", Energy: 100})
	require.True(t, errors.Is(err, ErrNotFound))
	require.Len(t, rec.Reports("warning"), 1)
	require.Empty(t, rec.Reports("broken"))
}

func TestTransportErrors(t *testing.T) {
	t.Run("submit status", func(t *testing.T) {
		f := newFakeService(t)
		client, rec := newTestClient(t, f)

		_, err := client.RefractiveIndex(context.Background(), RefractiveIndexRequest{
			Formula: "Fe",
			Energy:  Sweep{Min: 30, Max: 130, Points: 100},
		})
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Equal(t, "POST", transportErr.Op)
		require.Equal(t, http.StatusNotFound, transportErr.StatusCode)
		require.NotEmpty(t, rec.Reports("broken"))
	})

	t.Run("fetch status", func(t *testing.T) {
		f := newFakeService(t)
		f.page(endpointFilter, filterResultHtml)
		client, _ := newTestClient(t, f)

		_, err := client.Filter(context.Background(), FilterRequest{
			Formula:   "Al",
			Thickness: 0.2,
			Energy:    Sweep{Min: 20, Max: 220, Points: 200},
		})
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Equal(t, "GET", transportErr.Op)
		require.Equal(t, http.StatusNotFound, transportErr.StatusCode)
		require.True(t, strings.HasSuffix(transportErr.URL, "/tmp/xray2051.dat"))
	})

	t.Run("connection refused", func(t *testing.T) {
		f := newFakeService(t)
		client, _ := newTestClient(t, f)
		f.server.Close()

		_, err := client.BindingEnergy(context.Background(), BindingEnergyRequest{Element: "Fe", Energy: 100})
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		require.Zero(t, transportErr.StatusCode)
		require.NotNil(t, transportErr.Err)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFakeService(t)
		f.page(endpointBindingEnergy, bindingFeHtml)
		client, _ := newTestClient(t, f)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.BindingEnergy(ctx, BindingEnergyRequest{Element: "Fe", Energy: 100})
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestParseFailure(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointFilter, filterResultHtml)
	f.file("/tmp/xray2051.dat", "header\nheader\n 20.0 0.5\n 40.0\n")
	client, _ := newTestClient(t, f)

	_, err := client.Filter(context.Background(), FilterRequest{
		Formula:   "Al",
		Thickness: 0.2,
		Energy:    Sweep{Min: 20, Max: 220, Points: 200},
	})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, 4, parseErr.Line)
}

func TestRefractiveIndex(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointRefractiveIndex, `<a href="/tmp/getdb_1.dat">download</a>`)
	f.file("/tmp/getdb_1.dat", getdbFeDat)
	client, _ := newTestClient(t, f)

	res, err := client.RefractiveIndex(context.Background(), RefractiveIndexRequest{
		Formula: "Fe",
		Energy:  Sweep{Min: 30, Max: 130, Points: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Table.Width())
	require.Equal(t, []string{"Energy (eV)", "Delta", "Beta"}, res.Meta.Columns)
	require.True(t, res.Meta.LogY)
	require.Equal(t, "Text File", f.posts[0].Get("Output"))

	wavelength, err := res.InWavelength()
	require.NoError(t, err)
	require.Equal(t, "Wavelength (nm)", wavelength.Meta.XLabel)
	require.Equal(t, []string{"Wavelength (nm)", "Delta", "Beta"}, wavelength.Meta.Columns)
	for i, row := range wavelength.Table.Rows {
		require.Equal(t, HcEVNanometer/res.Table.Rows[i][0], row[0])
	}
	require.Equal(t, "Energy (eV)", res.Meta.Columns[0])
}

func TestMultilayerAngleScan(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointMultilayer, `<IMG SRC="/tmp/multi.gif"><A HREF="/tmp/multi.dat">data</A>`)
	f.file("/tmp/multi.dat", "title\nAngle, Reflectivity\n 10 0.01\n 45 0.3\n 80 0.02\n")
	client, _ := newTestClient(t, f)

	res, err := client.Multilayer(context.Background(), MultilayerRequest{
		Top:          "Si",
		Bottom:       "Mo",
		Substrate:    "SiO2",
		Period:       6.9,
		Gamma:        0.4,
		Cells:        40,
		Polarization: PolarizationS,
		Scan:         AngleScan(Sweep{Min: 10, Max: 80, Points: 3}, 95),
	})
	require.NoError(t, err)
	require.Equal(t, "[Si (4.1 nm) | Mo (2.8 nm)]x40 on SiO2 at 95.00 eV", res.Meta.Title)
	require.Equal(t, "Inc. angle (deg)", res.Meta.XLabel)
	require.Equal(t, AxisAngle, res.Meta.Axis)

	form := f.posts[0]
	require.Equal(t, "Angle", form.Get("Scan"))
	require.Equal(t, "95", form.Get("Fixed"))
	require.Equal(t, "Energy (eV)", form.Get("temp"))

	_, err = res.InWavelength()
	require.Error(t, err)
}

func TestSingleLayerEnergyScan(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointSingleLayer, `<A HREF="/tmp/laymir.dat">data</A>`)
	f.file("/tmp/laymir.dat", "title\nEnergy, Reflectivity\n 85 0.2\n 100 0.1\n")
	client, _ := newTestClient(t, f)

	res, err := client.SingleLayer(context.Background(), SingleLayerRequest{
		Layer:        "Au",
		Substrate:    "Si",
		Thickness:    30,
		Polarization: PolarizationS,
		Scan:         EnergyScan(Sweep{Min: 85, Max: 100, Points: 2}, 90),
	})
	require.NoError(t, err)
	require.Equal(t, "Au (30.0 nm) on Si at 90.00 deg", res.Meta.Title)
	require.Equal(t, "Energy (eV)", res.Meta.XLabel)
	require.Equal(t, "Angle (deg)", f.posts[0].Get("temp"))
}

func TestInvalidScanIsRejectedLocally(t *testing.T) {
	f := newFakeService(t)
	client, _ := newTestClient(t, f)

	_, err := client.SingleLayer(context.Background(), SingleLayerRequest{
		Layer:     "Au",
		Substrate: "Si",
		Scan:      Scan{Axis: "Wavelength", Sweep: Sweep{Min: 1, Max: 2, Points: 2}},
	})
	require.Error(t, err)
	require.Empty(t, f.posts)
}

// serves a filter whose transmission encodes the thickness so entries can be
// told apart.
func batchFilterService(t testing.TB) *fakeService {
	f := newFakeService(t)
	f.pages[endpointFilter] = func(form url.Values) string {
		return fmt.Sprintf(
			`<A HREF="/tmp/%s_%s.dat">data</A>`,
			form.Get("Formula"), form.Get("Thickness"),
		)
	}
	f.files["/tmp/"] = func(path string) (string, bool) {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "/tmp/"), ".dat")
		parts := strings.SplitN(name, "_", 2)
		if len(parts) != 2 || parts[0] == "Qq" {
			return "", false
		}
		thickness, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%s\nEnergy, Transmission\n 20 %s\n", parts[0], formatFloat(thickness)), true
	}
	return f
}

func TestFiltersBatch(t *testing.T) {
	f := batchFilterService(t)
	client, rec := newTestClient(t, f)

	sweep := Sweep{Min: 20, Max: 220, Points: 200}
	reqs := []FilterRequest{
		{Formula: "Al", Thickness: 0.1, Energy: sweep},
		{Formula: "Al", Thickness: 0.2, Energy: sweep},
		{Formula: "Zr", Thickness: 0.1, Energy: sweep},
	}
	results, err := client.Filters(context.Background(), reqs)
	require.NoError(t, err)

	require.Len(t, f.posts, 3)
	require.Len(t, f.gets, 3)

	keys := []string{}
	for i, result := range results {
		keys = append(keys, result.Key)
		require.Equal(t, reqs[i], result.Request)
		require.Equal(t, reqs[i].Formula, result.Response.Table.Header[0])
		require.Equal(t, [][]float64{{20, reqs[i].Thickness}}, result.Response.Table.Rows)
	}
	require.Equal(t, []string{"Al_100.0", "Al_200.0", "Zr_100.0"}, keys)

	progress := []any{}
	for _, report := range rec.Reports("debug") {
		if strings.HasSuffix(report.Id, report_client_batch) {
			progress = append(progress, report.Params[0])
		}
	}
	require.Equal(t, []any{"Progress: 33.3 %", "Progress: 66.7 %", "Progress: 100.0 %"}, progress)
}

func TestFiltersBatchAbortsOnError(t *testing.T) {
	f := batchFilterService(t)
	client, _ := newTestClient(t, f)

	sweep := Sweep{Min: 20, Max: 220, Points: 200}
	results, err := client.Filters(context.Background(), []FilterRequest{
		{Formula: "Al", Thickness: 0.1, Energy: sweep},
		{Formula: "Qq", Thickness: 0.1, Energy: sweep},
		{Formula: "Zr", Thickness: 0.1, Energy: sweep},
	})
	require.Nil(t, results)
	require.ErrorContains(t, err, "Qq_100.0")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Len(t, f.posts, 2)
}

func TestThickMirrorsBatch(t *testing.T) {
	f := newFakeService(t)
	f.pages[endpointThickMirror] = func(form url.Values) string {
		return fmt.Sprintf(`<A HREF="/tmp/mirror%s.dat">data</A>`, form.Get("Pol"))
	}
	f.file("/tmp/mirror1.dat", "Au\nEnergy, Reflectivity\n 40 0.11\n")
	f.file("/tmp/mirror-1.dat", "Au\nEnergy, Reflectivity\n 40 0.05\n")
	client, _ := newTestClient(t, f)

	scan := EnergyScan(Sweep{Min: 40, Max: 100, Points: 100}, 42)
	results, err := client.ThickMirrors(context.Background(), []ThickMirrorRequest{
		{Formula: "Au", Polarization: PolarizationS, Scan: scan},
		{Formula: "Au", Polarization: PolarizationP, Scan: scan},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Au_1_0", results[0].Key)
	require.Equal(t, "Au_-1_0", results[1].Key)
	require.Equal(t, 0.11, results[0].Response.Table.Rows[0][1])
	require.Equal(t, 0.05, results[1].Response.Table.Rows[0][1])
	require.Equal(t, "42", f.posts[0].Get("Fixed"))
}

func TestAttenuationLength(t *testing.T) {
	f := newFakeService(t)
	f.page(endpointAttenuationLength, `<A HREF="/tmp/atten.dat">data</A>`)
	f.file("/tmp/atten.dat", "Al\nEnergy, Atten Length\n 30 0.0123\n 130 0.0456\n")
	client, _ := newTestClient(t, f)

	res, err := client.AttenuationLength(context.Background(), AttenuationLengthRequest{
		Formula: "Al",
		Energy:  Sweep{Min: 30, Max: 130, Points: 2},
	})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{30, 0.0123}, {130, 0.0456}}, res.Table.Rows)
	require.Equal(t, "Attenuation length for Al at 90.00 deg", res.Meta.Title)
}
