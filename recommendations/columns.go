package recommendations

func resource() Column {
	return Column{ID: "resource", HeaderMessageID: "resource", Accessor: "cloud_resource_id", Cell: CellResource, Sortable: true}
}

func location() Column {
	return Column{ID: "location", HeaderMessageID: "location", Accessor: "region", Cell: CellRegion, Sortable: true}
}

func pool() Column {
	return Column{ID: "pool", HeaderMessageID: "pool", Accessor: "pool_id", Cell: CellPool}
}

func owner() Column {
	return Column{ID: "owner", HeaderMessageID: "owner", Accessor: "owner_id", Cell: CellOwner}
}

func savings() Column {
	return Column{ID: SavingsColumn, HeaderMessageID: "possibleMonthlySavings", Accessor: "saving", Cell: CellMoney, Sortable: true, DefaultSort: "desc"}
}

func size() Column {
	return Column{ID: "size", HeaderMessageID: "size", Accessor: "size", Cell: CellSize, Sortable: true}
}

func date(id, accessor string) Column {
	return Column{ID: id, HeaderMessageID: id, Accessor: accessor, Cell: CellDate, Sortable: true}
}

func text(id, accessor string) Column {
	return Column{ID: id, HeaderMessageID: id, Accessor: accessor, Cell: CellText}
}

func money(id, accessor string) Column {
	return Column{ID: id, HeaderMessageID: id, Accessor: accessor, Cell: CellMoney, Sortable: true}
}

func count(id, accessor string) Column {
	return Column{ID: id, HeaderMessageID: id, Accessor: accessor, Cell: CellCount, Sortable: true}
}

func cpu(id, accessor string) Column {
	return Column{ID: id, HeaderMessageID: id, Accessor: accessor, Cell: CellCPU, Sortable: true}
}

// costColumns is the usual layout of a cost type: resource, location, the
// type-specific columns, ownership and the savings column last.
func costColumns(extra ...Column) func() []Column {
	return func() []Column {
		cols := []Column{resource(), location()}
		cols = append(cols, extra...)
		return append(cols, pool(), owner(), savings())
	}
}

func securityColumns(extra ...Column) func() []Column {
	return func() []Column {
		cols := []Column{resource(), location()}
		cols = append(cols, extra...)
		return append(cols, pool(), owner())
	}
}
