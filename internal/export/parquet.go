// Package export writes game records to Parquet files.
package export

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/chesswrapper-go/internal/chess"
	"github.com/lgbarn/chesswrapper-go/internal/config"
	"github.com/lgbarn/chesswrapper-go/internal/engine"
	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// GameRecord is one row of the export file. Moves holds the move tokens
// joined by single spaces.
type GameRecord struct {
	GameID     string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Source     string `parquet:"name=source, type=BYTE_ARRAY, convertedtype=UTF8"`
	GameNumber int32  `parquet:"name=game_number, type=INT32"`
	Event      string `parquet:"name=event, type=BYTE_ARRAY, convertedtype=UTF8"`
	Site       string `parquet:"name=site, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date       string `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Round      string `parquet:"name=round, type=BYTE_ARRAY, convertedtype=UTF8"`
	White      string `parquet:"name=white, type=BYTE_ARRAY, convertedtype=UTF8"`
	Black      string `parquet:"name=black, type=BYTE_ARRAY, convertedtype=UTF8"`
	Result     string `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	Moves      string `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8"`
	PlyCount   int32  `parquet:"name=ply_count, type=INT32"`
	InitialFEN string `parquet:"name=initial_fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	FinalFEN   string `parquet:"name=final_fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Error      string `parquet:"name=error, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// NewGameRecord builds a record with a fresh random game ID. game may be
// nil when the text did not parse; final is nil when the game was not
// replayed.
func NewGameRecord(source string, gameNum int, game *chess.Game, initialFEN string, final *engine.GameState, err error) GameRecord {
	rec := GameRecord{
		GameID:     uuid.NewString(),
		Source:     source,
		GameNumber: int32(gameNum),
		InitialFEN: initialFEN,
	}
	if game != nil {
		rec.Event = game.Event()
		rec.Site = game.GetTag("Site")
		rec.Date = game.Date()
		rec.Round = game.GetTag("Round")
		rec.White = game.White()
		rec.Black = game.Black()
		rec.Result = game.Result()
		rec.Moves = strings.Join(game.Moves, " ")
		rec.PlyCount = int32(game.PlyCount())
	}
	if final != nil {
		rec.FinalFEN = final.FEN()
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// MoveList splits Moves back into tokens.
func (r GameRecord) MoveList() []string {
	return strings.Fields(r.Moves)
}

// WriteParquet drains records into a new Parquet file at cfg.ParquetPath.
func WriteParquet(records <-chan GameRecord, cfg *config.ExportConfig) error {
	codec, err := parquet.CompressionCodecFromString(cfg.Compression)
	if err != nil {
		return fmt.Errorf("compression %q: %w", cfg.Compression, errors.ErrValidation)
	}

	fileWriter, err := local.NewLocalFileWriter(cfg.ParquetPath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", cfg.ParquetPath)
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(GameRecord), cfg.Parallel)
	if err != nil {
		return errors.Wrap(err, "parquet schema")
	}
	parquetWriter.CompressionType = codec

	for record := range records {
		if err := parquetWriter.Write(record); err != nil {
			return errors.Wrapf(err, "writing game %d", record.GameNumber)
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return errors.Wrap(err, "finishing parquet file")
	}
	return fileWriter.Close()
}

// WriteRecords writes a slice of records; see WriteParquet.
func WriteRecords(records []GameRecord, cfg *config.ExportConfig) error {
	ch := make(chan GameRecord, len(records))
	for _, rec := range records {
		ch <- rec
	}
	close(ch)
	return WriteParquet(ch, cfg)
}

// ReadParquet loads every record from a file written by WriteParquet.
func ReadParquet(path string, parallel int64) ([]GameRecord, error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(GameRecord), parallel)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	records := make([]GameRecord, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		if remain := num - offset; remain < batchSize {
			batchSize = remain
		}
		batch := make([]GameRecord, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		records = append(records, batch...)
	}
	return records, nil
}
