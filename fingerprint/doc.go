// Package fingerprint implements the 152-byte file header shared by every
// binary artifact this pipeline writes: a magic value, a three-part
// version, and a CRC-8 checksum over the preceding bytes, used to decide
// whether two files are data-compatible.
package fingerprint
