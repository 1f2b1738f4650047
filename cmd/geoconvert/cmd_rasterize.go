package main

import (
	"fmt"
	"os"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/service"
	"GeoConvert-App/internal/usecase"
)

type CmdRasterize struct {
	global *GlobalOptions

	Grayscale     bool   `short:"g" long:"grayscale" description:"評価区分ごとの濃度で描く"`
	TruePositive  bool   `long:"true-positive" description:"評価区分0のみ描く（他のトグルと併用可）"`
	FalsePositive bool   `long:"false-positive" description:"評価区分1のみ描く（他のトグルと併用可）"`
	FalseNegative bool   `long:"false-negative" description:"評価区分2のみ描く（他のトグルと併用可）"`
	Format        string `short:"f" long:"format" default:"tiff" choice:"tiff" choice:"tiff-deflate" choice:"png" description:"出力形式"`
}

func init() {
	_, err := parser.AddCommand("rasterize",
		"Rasterize features",
		"{width, height, features} 形式のJSONを単一バンド8bitのラスタに焼き込む",
		&CmdRasterize{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd *CmdRasterize) Usage() string {
	return "request.json output.tif"
}

func (cmd *CmdRasterize) renderOptions() model.RenderOptions {
	if !cmd.TruePositive && !cmd.FalsePositive && !cmd.FalseNegative {
		return model.ResolveRenderOptions(cmd.Grayscale, nil, nil, nil)
	}
	return model.ResolveRenderOptions(cmd.Grayscale, &cmd.TruePositive, &cmd.FalsePositive, &cmd.FalseNegative)
}

func (cmd *CmdRasterize) Execute(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("入力と出力のパスが必要です。Usage: %s", cmd.Usage())
	}
	format, err := model.ParseOutputFormat(cmd.Format)
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

	useCase := usecase.NewRasterizeUseCase(
		service.NewBurnPlanner(ws.logger),
		service.NewRasterizer(cmd.global.Workers),
		cmd.global.MaxDimension,
		ws.logger,
	)
	result, err := useCase.Rasterize(ctx, session, in, cmd.renderOptions(), format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(args[1], result.Data, 0o644); err != nil {
		return fmt.Errorf("出力ファイルの書き込みに失敗: %w", err)
	}
	return nil
}
