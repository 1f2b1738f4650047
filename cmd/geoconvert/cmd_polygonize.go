package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/usecase"
)

type CmdPolygonize struct {
	global *GlobalOptions

	Mask   bool   `short:"m" long:"mask" description:"値0の画素を除外する"`
	Format string `short:"f" long:"format" default:"geojson" choice:"geojson" choice:"shapefile" description:"出力形式"`
}

func init() {
	_, err := parser.AddCommand("polygonize",
		"Polygonize a raster",
		"単一バンドのラスタを同値領域のポリゴンに変換し、GeoJSONまたはシェープファイル(zip)に書き出す",
		&CmdPolygonize{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd *CmdPolygonize) Usage() string {
	return "input.tif output"
}

func (cmd *CmdPolygonize) Execute(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("入力と出力のパスが必要です。Usage: %s", cmd.Usage())
	}
	format, err := model.ParseVectorFormat(cmd.Format)
	if err != nil {
		return err
	}

	ws, err := cmd.global.openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("入力ファイルを開けません: %w", err)
	}
	defer in.Close()

	ctx, stop := signalContext()
	defer stop()

	session := ws.store.NewSession()
	defer func() { _ = session.Close() }()

	useCase := usecase.NewPolygonizeUseCase(service.NewPolygonizer(), cmd.global.MaxDimension, ws.logger)
	opts := model.PolygonizeOptions{MaskZero: cmd.Mask}

	var data []byte
	if format == model.VectorFormatShapefile {
		data, err = useCase.PolygonizeShapefile(ctx, session, in, opts)
		if err != nil {
			return err
		}
	} else {
		features, err := useCase.Polygonize(ctx, session, in, opts)
		if err != nil {
			return err
		}
		fc := geojson.NewFeatureCollection()
		fc.Features = features
		if data, err = fc.MarshalJSON(); err != nil {
			return err
		}
	}

	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fmt.Errorf("出力ファイルの書き込みに失敗: %w", err)
	}
	return nil
}
