package henke

import (
	"context"
	"errors"
	"fmt"
	"henke-client/internal/components/telemetry"
)

const (
	report_client_binding_energy = "client.binding-energy"
	report_client_batch          = "client.batch"
)

// BindingEnergy looks up the absorption edges of an element. An element the
// service does not know yields ErrNotFound.
func (c *Client) BindingEnergy(ctx context.Context, req BindingEnergyRequest) (BindingEnergy, error) {
	page, err := c.submit(ctx, endpointBindingEnergy, req.Form())
	if err != nil {
		return BindingEnergy{}, err
	}

	result, err := ParseBindingEnergy(req.Element, req.Energy, page)
	if errors.Is(err, ErrNotFound) {
		c.tel.ReportWarning(report_client_binding_energy, err)
		return BindingEnergy{}, err
	}
	if err != nil {
		c.tel.ReportBroken(report_client_binding_energy, err, req.Element)
		return BindingEnergy{}, err
	}
	c.tel.ReportDebug(report_client_binding_energy, req.Element, len(result.Edges))
	return result, nil
}

// Filter computes the transmission of one filter, the table holds energy and
// transmission.
func (c *Client) Filter(ctx context.Context, req FilterRequest) (Response, error) {
	err := req.Energy.validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointFilter, req.Form(), 2)
	if err != nil {
		return Response{}, fmt.Errorf("filter %s: %w", req.Key(), err)
	}
	return Response{Table: table, Meta: filterMeta(req)}, nil
}

// ThickMirror computes the reflectivity of a bulk mirror, the table holds the
// swept axis and reflectivity.
func (c *Client) ThickMirror(ctx context.Context, req ThickMirrorRequest) (Response, error) {
	err := req.Scan.Validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointThickMirror, req.Form(), 2)
	if err != nil {
		return Response{}, fmt.Errorf("thick mirror %s: %w", req.Key(), err)
	}
	return Response{Table: table, Meta: thickMirrorMeta(req)}, nil
}

// Multilayer computes the reflectivity of a periodic multilayer mirror, the
// table holds the swept axis and reflectivity.
func (c *Client) Multilayer(ctx context.Context, req MultilayerRequest) (Response, error) {
	err := req.Scan.Validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointMultilayer, req.Form(), 2)
	if err != nil {
		return Response{}, fmt.Errorf("multilayer: %w", err)
	}
	return Response{Table: table, Meta: multilayerMeta(req)}, nil
}

// SingleLayer computes the reflectivity of a single layer on a substrate, the
// table holds the swept axis and reflectivity.
func (c *Client) SingleLayer(ctx context.Context, req SingleLayerRequest) (Response, error) {
	err := req.Scan.Validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointSingleLayer, req.Form(), 2)
	if err != nil {
		return Response{}, fmt.Errorf("single layer: %w", err)
	}
	return Response{Table: table, Meta: singleLayerMeta(req)}, nil
}

// RefractiveIndex tabulates delta and beta, the table holds energy, delta and
// beta.
func (c *Client) RefractiveIndex(ctx context.Context, req RefractiveIndexRequest) (Response, error) {
	err := req.Energy.validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointRefractiveIndex, req.Form(), 3)
	if err != nil {
		return Response{}, fmt.Errorf("refractive index %s: %w", req.Formula, err)
	}
	return Response{Table: table, Meta: refractiveIndexMeta(req)}, nil
}

// AttenuationLength tabulates the attenuation length, the table holds energy
// and length in microns.
func (c *Client) AttenuationLength(ctx context.Context, req AttenuationLengthRequest) (Response, error) {
	err := req.Energy.validate()
	if err != nil {
		return Response{}, err
	}
	table, err := c.tabulate(ctx, endpointAttenuationLength, req.Form(), 2)
	if err != nil {
		return Response{}, fmt.Errorf("attenuation length %s: %w", req.Formula, err)
	}
	return Response{Table: table, Meta: attenuationLengthMeta(req)}, nil
}

// BatchResult is one entry of a batch, Key is unique as long as the requests
// differ in the fields that make up the key.
type BatchResult[R any] struct {
	Key      string
	Request  R
	Response Response
}

type FilterResult = BatchResult[FilterRequest]
type MirrorResult = BatchResult[ThickMirrorRequest]

type keyed interface {
	Key() string
}

// runBatch runs requests strictly one after another, the first error aborts the
// batch.
func runBatch[R keyed](
	ctx context.Context,
	tel telemetry.API,
	reqs []R,
	fetch func(context.Context, R) (Response, error),
) ([]BatchResult[R], error) {
	results := make([]BatchResult[R], 0, len(reqs))
	for i, req := range reqs {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		tel.ReportDebug(
			report_client_batch,
			fmt.Sprintf("Progress: %.1f %%", 1e2*float64(i+1)/float64(len(reqs))),
			req.Key(),
		)
		res, err := fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, BatchResult[R]{
			Key:      req.Key(),
			Request:  req,
			Response: res,
		})
	}
	tel.ReportCount(report_client_batch, int64(len(results)))
	return results, nil
}

// Filters runs Filter for each request in order.
func (c *Client) Filters(ctx context.Context, reqs []FilterRequest) ([]FilterResult, error) {
	return runBatch(ctx, c.tel, reqs, c.Filter)
}

// ThickMirrors runs ThickMirror for each request in order.
func (c *Client) ThickMirrors(ctx context.Context, reqs []ThickMirrorRequest) ([]MirrorResult, error) {
	return runBatch(ctx, c.tel, reqs, c.ThickMirror)
}
