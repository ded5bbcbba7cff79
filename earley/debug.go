package earley

func dumpColumn(columns []*column, index uint64) {
	tracer().Debugf("--- Column %04d -----------------------------------", index)
	S := columns[index].items
	n := 1
	S.IterateOnce()
	for S.Next() {
		it := S.Item().(*item)
		tracer().Debugf("[%2d] %s", n, it)
		n++
	}
}
