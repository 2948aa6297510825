package netspeed

import (
	"errors"
	"testing"
)

// fakeSource replays scripted enumeration batches; the last batch repeats
// once exhausted.
type fakeSource struct {
	batches [][]Interface
	err     error
	calls   int
}

func (f *fakeSource) Enumerate() ([]Interface, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.batches) {
		idx = len(f.batches) - 1
	}
	return f.batches[idx], nil
}

func testInterfaces() []Interface {
	return []Interface{
		{Index: 1, Type: TypeLoopback, Description: "Loopback Pseudo-Interface", Operational: true, BytesSent: 10, BytesRecv: 10},
		{Index: 2, Type: TypeEthernet, Description: "Intel Ethernet Controller", Operational: true, BytesSent: 1000, BytesRecv: 2000},
		{Index: 3, Type: TypeEthernet, Description: "VMware Virtual Ethernet Adapter", Operational: true, BytesSent: 50, BytesRecv: 50},
		{Index: 4, Type: TypeWiFi, Description: "Bluetooth PAN Adapter", Operational: true, BytesSent: 5, BytesRecv: 5},
		{Index: 5, Type: TypeWiFi, Description: "Realtek Wi-Fi Adapter", Operational: true, BytesSent: 300, BytesRecv: 700},
	}
}

func TestDirectoryDefaultFilters(t *testing.T) {
	src := &fakeSource{batches: [][]Interface{testInterfaces()}}
	dir := NewDirectory(DefaultConfig(), src)

	accepted, err := dir.Accepted()
	if err != nil {
		t.Fatalf("Accepted() error: %v", err)
	}
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted interfaces, got %d", len(accepted))
	}
	if accepted[0].Index != 2 || accepted[1].Index != 5 {
		t.Errorf("expected ethernet and wifi to survive, got %+v", accepted)
	}
}

func TestDirectoryIncludeIndices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeInterfaceIndices = []uint32{5}
	dir := NewDirectory(cfg, &fakeSource{batches: [][]Interface{testInterfaces()}})

	accepted, err := dir.Accepted()
	if err != nil {
		t.Fatalf("Accepted() error: %v", err)
	}
	if len(accepted) != 1 || accepted[0].Index != 5 {
		t.Errorf("expected only index 5, got %+v", accepted)
	}
}

func TestDirectoryIncludePatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeInterfaceNamePatterns = []string{"intel"}
	dir := NewDirectory(cfg, &fakeSource{batches: [][]Interface{testInterfaces()}})

	accepted, err := dir.Accepted()
	if err != nil {
		t.Fatalf("Accepted() error: %v", err)
	}
	if len(accepted) != 1 || accepted[0].Index != 2 {
		t.Errorf("expected only the intel adapter, got %+v", accepted)
	}
}

func TestDirectoryNameFilters(t *testing.T) {
	cfg := DefaultConfig().WithNameFilter("realtek")
	dir := NewDirectory(cfg, &fakeSource{batches: [][]Interface{testInterfaces()}})

	accepted, err := dir.Accepted()
	if err != nil {
		t.Fatalf("Accepted() error: %v", err)
	}
	for _, iface := range accepted {
		if iface.Index == 5 {
			t.Error("name filter should have excluded the realtek adapter")
		}
	}
}

func TestDirectoryTypeFilters(t *testing.T) {
	cfg := DefaultConfig().WithTypeFilter(TypeWiFi)
	dir := NewDirectory(cfg, &fakeSource{batches: [][]Interface{testInterfaces()}})

	accepted, err := dir.Accepted()
	if err != nil {
		t.Fatalf("Accepted() error: %v", err)
	}
	if len(accepted) != 1 || accepted[0].Type != TypeEthernet {
		t.Errorf("expected only ethernet, got %+v", accepted)
	}
}

func TestDirectoryNoInterfaces(t *testing.T) {
	cfg := DefaultConfig().WithNameFilter("adapter").WithNameFilter("interface").WithNameFilter("controller")
	dir := NewDirectory(cfg, &fakeSource{batches: [][]Interface{testInterfaces()}})

	if _, err := dir.Accepted(); !errors.Is(err, ErrNoInterfaces) {
		t.Fatalf("expected ErrNoInterfaces, got %v", err)
	}
	if _, ok := dir.ByIndex(2); ok {
		t.Error("cache should be cleared when nothing is accepted")
	}
}

func TestDirectoryCacheReplaced(t *testing.T) {
	first := testInterfaces()
	second := []Interface{
		{Index: 7, Type: TypeEthernet, Description: "New NIC", Operational: true, BytesSent: 1, BytesRecv: 1},
	}
	dir := NewDirectory(DefaultConfig(), &fakeSource{batches: [][]Interface{first, second}})

	if _, err := dir.Accepted(); err != nil {
		t.Fatalf("first Accepted() error: %v", err)
	}
	if _, ok := dir.ByIndex(2); !ok {
		t.Fatal("expected index 2 in cache after first call")
	}

	if _, err := dir.Accepted(); err != nil {
		t.Fatalf("second Accepted() error: %v", err)
	}
	if _, ok := dir.ByIndex(2); ok {
		t.Error("stale index 2 should have been dropped")
	}
	if _, ok := dir.ByIndex(7); !ok {
		t.Error("expected index 7 in replaced cache")
	}
}

func TestDirectoryTotalTraffic(t *testing.T) {
	dir := NewDirectory(DefaultConfig(), &fakeSource{batches: [][]Interface{testInterfaces()}})

	sent, recv, err := dir.TotalTraffic()
	if err != nil {
		t.Fatalf("TotalTraffic() error: %v", err)
	}
	// Ethernet (1000/2000) + Wi-Fi (300/700); loopback, virtual, and
	// bluetooth are excluded by the default config.
	if sent != 1300 || recv != 2700 {
		t.Errorf("expected totals 1300/2700, got %d/%d", sent, recv)
	}
}

func TestDirectoryProviderError(t *testing.T) {
	boom := errors.New("provider exploded")
	dir := NewDirectory(DefaultConfig(), &fakeSource{err: boom})

	if _, err := dir.Accepted(); !errors.Is(err, boom) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
}

func TestInterfaceClassifiers(t *testing.T) {
	vpn := Interface{Type: TypeEthernet, Description: "WAN Miniport (PPTP)"}
	if !vpn.IsVirtual() {
		t.Error("WAN miniport should classify as virtual")
	}
	bt := Interface{Type: TypeEthernet, Description: "Generic Bluetooth Adapter"}
	if !bt.IsBluetooth() {
		t.Error("bluetooth adapter should classify as bluetooth")
	}
	lo := Interface{Type: TypeLoopback, Description: "lo"}
	if !lo.IsLoopback() {
		t.Error("type 24 should classify as loopback")
	}
	if lo.TypeName() != "Loopback" {
		t.Errorf("expected type name Loopback, got %s", lo.TypeName())
	}
}

func TestChainFallsBackOnUnsupported(t *testing.T) {
	supported := &fakeSource{batches: [][]Interface{testInterfaces()}}
	chain := Chain{
		&fakeSource{err: ErrUnsupported},
		supported,
	}

	ifaces, err := chain.Enumerate()
	if err != nil {
		t.Fatalf("Enumerate() error: %v", err)
	}
	if len(ifaces) != 5 {
		t.Errorf("expected fallback source results, got %d interfaces", len(ifaces))
	}
}

func TestChainStopsOnRealError(t *testing.T) {
	boom := errors.New("table read failed")
	fallback := &fakeSource{batches: [][]Interface{testInterfaces()}}
	chain := Chain{
		&fakeSource{err: boom},
		fallback,
	}

	if _, err := chain.Enumerate(); !errors.Is(err, boom) {
		t.Fatalf("expected first source's error, got %v", err)
	}
	if fallback.calls != 0 {
		t.Error("fallback must not be consulted on a non-unsupported error")
	}
}

func TestChainAllUnsupported(t *testing.T) {
	chain := Chain{&fakeSource{err: ErrUnsupported}}
	if _, err := chain.Enumerate(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
