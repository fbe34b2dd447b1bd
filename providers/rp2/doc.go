// Package rp2 is the silicon provider for the RP2 family (Pico / Pico 2).
// GPIO, ADC, I2C and SPI go through machine; UART goes through uartx for its
// context-aware receive path. The implementation builds only for rp2040 and
// rp2350 targets; on the host this package is empty.
package rp2
