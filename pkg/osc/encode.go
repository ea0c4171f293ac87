package osc

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Пакет osc кодирует телеметрию в компактные бинарные датаграммы
// (подмножество формата OSC): строки с нулевым терминатором и выравниванием
// по 4 байта, строка тегов ",i/f/s" и big-endian аргументы.

// argKind - внутренний тип аргумента. Тип фиксируется на месте вызова
// конструктором (Int/Float/String), без динамической проверки типов.
type argKind uint8

const (
	kindInt argKind = iota
	kindFloat
	kindString
)

// Arg - один типизированный аргумент сообщения.
type Arg struct {
	kind argKind
	i    int32
	f    float32
	s    string
}

// Int упаковывает целое как 32-битное знаковое big-endian.
func Int(v int) Arg {
	return Arg{kind: kindInt, i: int32(v)}
}

// Float упаковывает число с плавающей точкой как 32-битный IEEE-754.
func Float(v float32) Arg {
	return Arg{kind: kindFloat, f: v}
}

// String упаковывает строку с нулевым терминатором и выравниванием.
func String(v string) Arg {
	return Arg{kind: kindString, s: v}
}

// tag возвращает символ типа для строки тегов.
func (a Arg) tag() byte {
	switch a.kind {
	case kindInt:
		return 'i'
	case kindFloat:
		return 'f'
	default:
		return 's'
	}
}

// packString кодирует строку: UTF-8 + нулевой байт,
// затем дополнение нулями до границы 4 байт.
func packString(s string) []byte {
	data := append([]byte(s), 0)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	return data
}

// Pack собирает полную датаграмму: блок адреса + блок тегов + аргументы.
func Pack(address string, args ...Arg) []byte {
	var buf bytes.Buffer
	buf.Write(packString(address))

	tags := make([]byte, 0, len(args)+1)
	tags = append(tags, ',')
	for _, a := range args {
		tags = append(tags, a.tag())
	}
	buf.Write(packString(string(tags)))

	for _, a := range args {
		switch a.kind {
		case kindInt:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(a.i))
			buf.Write(b[:])
		case kindFloat:
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], math.Float32bits(a.f))
			buf.Write(b[:])
		case kindString:
			buf.Write(packString(a.s))
		}
	}

	return buf.Bytes()
}
