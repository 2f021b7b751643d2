// uartlite/wakers.go

//go:build !uartlite_wakers2 && !uartlite_wakers4 && !uartlite_wakers8 && !uartlite_wakers16 && !uartlite_wakers32

package uartlite

// NumWakers is the number of async TX slots. Select another size with one of
// the uartlite_wakers{2,4,8,16,32} build tags.
const NumWakers = 1
