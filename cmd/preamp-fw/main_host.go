//go:build !rp2040

package main

// Host stub so the module builds without the TinyGo toolchain.
// Flash the real thing with:
//
//	tinygo flash -target=pico ./cmd/preamp-fw
func main() {
	println("preamp-fw targets rp2040 hardware; use cmd/preamp-sim on a host")
}
