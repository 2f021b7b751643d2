// uartlite/wakers_4.go

//go:build uartlite_wakers4

package uartlite

const NumWakers = 4
