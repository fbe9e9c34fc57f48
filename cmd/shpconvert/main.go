// Command shpconvert converts exported GeoJSON documents to ESRI shapefiles
// and back.
//
//	shpconvert to-shp drawing.geojson out/drawing
//	shpconvert to-geojson out/drawing drawing.geojson
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/geojson"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/adapters/shapefile"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/config"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/logging"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/telemetry"
)

const usage = "usage: shpconvert to-shp <in.geojson> <out-base> | to-geojson <in-base> <out.geojson>"

func main() {
	cfg, err := config.Load("geodraw-shpconvert")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.Setup(cfg.Telemetry.ServiceName, cfg.Log.Level, cfg.Log.Format)

	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	n, err := convert(ctx, logger, os.Args[1], os.Args[2], os.Args[3])
	if err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
	logger.Info("conversion complete", "direction", os.Args[1], "shapes", n)
}

// convert runs one conversion and returns how many shapes it carried.
func convert(ctx context.Context, logger *slog.Logger, direction, in, out string) (int, error) {
	_, span := telemetry.Tracer().Start(ctx, telemetry.SpanShpConvert)
	defer span.End()
	span.SetAttributes(attribute.String("direction", direction))

	codec := geojson.NewCodec(logger)

	var (
		set domain.ShapeSet
		err error
	)
	switch direction {
	case "to-shp":
		set, err = geoJSONToShapefile(codec, in, out)
	case "to-geojson":
		set, err = shapefileToGeoJSON(codec, in, out)
	default:
		err = fmt.Errorf("unknown direction %q", direction)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int(telemetry.AttrShapeCount, set.Len()))
	return set.Len(), nil
}

func geoJSONToShapefile(codec *geojson.Codec, in, base string) (domain.ShapeSet, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return domain.ShapeSet{}, fmt.Errorf("read %s: %w", in, err)
	}
	set, err := codec.Decode(data)
	if err != nil {
		return domain.ShapeSet{}, fmt.Errorf("decode %s: %w", in, err)
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.ShapeSet{}, err
		}
	}
	if err := shapefile.Write(base, set); err != nil {
		return domain.ShapeSet{}, err
	}
	return set, nil
}

func shapefileToGeoJSON(codec *geojson.Codec, base, out string) (domain.ShapeSet, error) {
	set, err := shapefile.Read(base)
	if err != nil {
		return domain.ShapeSet{}, fmt.Errorf("read shapefile %s: %w", base, err)
	}
	data, err := codec.Encode(set)
	if err != nil {
		return domain.ShapeSet{}, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return domain.ShapeSet{}, fmt.Errorf("write %s: %w", out, err)
	}
	return set, nil
}
