package roddoc

// The lookup order matches htmldoc: element id first, then the task id attribute.
const locateJS = `
	const locate = (key, attr) => {
		const byId = document.getElementById(key);
		if (byId || !attr) return byId;
		for (const el of document.querySelectorAll('[' + attr + ']')) {
			if (el.getAttribute(attr) === key) return el;
		}
		return null;
	};`

const scanJS = `(rowClass, markers, idAttr, sumAttr) => {
	const out = [];
	for (const el of document.querySelectorAll('[class]')) {
		if (!markers.some(m => el.classList.contains(m))) continue;
		if (rowClass) {
			const parent = el.parentElement;
			if (!parent || !parent.closest('.' + CSS.escape(rowClass))) continue;
		}
		out.push({
			id: el.id || '',
			task_id: el.getAttribute(idAttr) || '',
			checksum: el.getAttribute(sumAttr) || '',
		});
	}
	return out;
}`

const replaceJS = `(key, attr, html) => {` + locateJS + `
	const el = locate(key, attr);
	if (!el || !el.parentNode) return false;
	el.outerHTML = html;
	return true;
}`

const reclassifyJS = `(key, attr, rowClass, add, remove) => {` + locateJS + `
	const el = locate(key, attr);
	if (!el) return false;
	const row = el.closest('.' + CSS.escape(rowClass));
	if (!row) return false;
	row.classList.remove(...remove);
	if (add) row.classList.add(add);
	return true;
}`
