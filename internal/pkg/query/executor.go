package query

func ExecuteAll[DB any, Domain any](
	q *Query[DB],
	converter func(*DB) (*Domain, error),
) ([]*Domain, error) {
	rows, err := q.Find()
	if err != nil {
		return nil, err
	}

	items := make([]*Domain, 0, len(rows))
	for i := range rows {
		item, err := converter(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func ExecuteOne[DB any, Domain any](
	q *Query[DB],
	converter func(*DB) (*Domain, error),
) (*Domain, error) {
	row, err := q.Take()
	if err != nil {
		return nil, err
	}
	return converter(row)
}
