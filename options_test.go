package calldata

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := newConfig(nil)
	if cfg.logger == nil {
		t.Error("Expected a no-op logger by default")
	}
	if cfg.lenientPadding || cfg.maxElements != 0 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
}

func TestOptions(t *testing.T) {
	cfg := newConfig([]Option{
		WithLogger(nil),
		WithLenientPadding(true),
		WithMaxElements(-4),
	})
	if cfg.logger == nil {
		t.Error("WithLogger(nil) should restore the no-op logger")
	}
	if !cfg.lenientPadding {
		t.Error("Expected lenient padding")
	}
	if cfg.maxElements != 0 {
		t.Errorf("Expected negative cap to clamp to 0, got %d", cfg.maxElements)
	}
}

func TestWithLoggerEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	if _, err := Breakdown("transfer(address to, uint256 amount)", []Value{Literal(addr1), Literal("7")}, WithLogger(logger)); err != nil {
		t.Fatalf("Breakdown failed: %v", err)
	}

	if n := logs.FilterMessage("encoded call").Len(); n != 1 {
		t.Errorf("Expected 1 encode event, got %d", n)
	}
	decomposed := logs.FilterMessage("decomposed call").All()
	if len(decomposed) != 1 {
		t.Fatalf("Expected 1 decompose event, got %d", len(decomposed))
	}
	if sig := decomposed[0].ContextMap()["signature"]; sig != "transfer(address,uint256)" {
		t.Errorf("Expected signature field, got %v", sig)
	}

	if _, err := Breakdown("f(uint8)", []Value{Literal("300")}, WithLogger(logger)); err == nil {
		t.Fatal("Expected overflow error")
	}
	if n := logs.FilterMessage("encode failed").Len(); n != 1 {
		t.Errorf("Expected 1 failure event, got %d", n)
	}
}
