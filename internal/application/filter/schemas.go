package filter

// Per-entity filter schemas. These are the single source of truth for which
// fields each list endpoint accepts and how each field filters.
var (
	// Roles supports substring search on the role name.
	Roles = Schema{
		"name": Keyword,
	}

	// Types supports membership filtering on the closed name enumeration.
	Types = Schema{
		"name": List,
	}

	// Users supports role membership and email substring search.
	Users = Schema{
		"role_id": List,
		"email":   Keyword,
	}

	// Categories supports owner/type membership and name substring search.
	Categories = Schema{
		"user_id": List,
		"type_id": List,
		"name":    Keyword,
	}

	// Transactions supports owner/type/category membership, inclusive date
	// and value bounds, and comment substring search.
	Transactions = Schema{
		"user_id":     List,
		"type_id":     List,
		"category_id": List,
		"date_gt":     GreaterEqual,
		"date_lt":     LessEqual,
		"value_gt":    GreaterEqual,
		"value_lt":    LessEqual,
		"comment":     Keyword,
	}

	// Goals supports owner/type/category membership, inclusive bounds on the
	// date range and target value, and name substring search.
	Goals = Schema{
		"user_id":         List,
		"type_id":         List,
		"category_id":     List,
		"start_date_gt":   GreaterEqual,
		"start_date_lt":   LessEqual,
		"end_date_gt":     GreaterEqual,
		"end_date_lt":     LessEqual,
		"target_value_gt": GreaterEqual,
		"target_value_lt": LessEqual,
		"name":            Keyword,
	}
)
