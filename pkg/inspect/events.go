package inspect

import "github.com/ionspect/ionspect/pkg/ionbin"

// Structural events are summarized as single dimmed comment rows rather
// than full hex dumps. They always occur at the top level, so the rows
// carry no indentation, and they bypass the skip/limit window.

func (in *inspector) writeVersionMarker() error {
	return in.table.writeRow(noOffset, noOffset, "",
		versionMarkerHex, in.st.comment.Sprint(versionMarkerText))
}

func (in *inspector) writeSymbolTableAppend() error {
	in.textBuf = in.textBuf[:0]
	in.textBuf = append(in.textBuf, `// Local symbol table append: ["`...)
	in.textBuf = joinInto(in.textBuf, `", "`, in.cur.SymbolTable().Tail(in.cur.AppendStart()))
	in.textBuf = append(in.textBuf, `"]`...)
	return in.table.writeRow(noOffset, noOffset, "",
		structuralHex, in.st.comment.Sprint(string(in.textBuf)))
}

func (in *inspector) writeSymbolTableReset() error {
	in.textBuf = in.textBuf[:0]
	table := in.cur.SymbolTable()
	if table.Len() > ionbin.SystemLen() {
		in.textBuf = append(in.textBuf, `// New local symbol table: ["`...)
		in.textBuf = joinInto(in.textBuf, `", "`, table.Tail(ionbin.SystemLen()))
		in.textBuf = append(in.textBuf, `"]`...)
	} else {
		in.textBuf = append(in.textBuf, "// Using system symbol table"...)
	}
	return in.table.writeRow(noOffset, noOffset, "",
		structuralHex, in.st.comment.Sprint(string(in.textBuf)))
}

func joinInto(dst []byte, delimiter string, values []string) []byte {
	for i, v := range values {
		if i > 0 {
			dst = append(dst, delimiter...)
		}
		dst = append(dst, v...)
	}
	return dst
}
