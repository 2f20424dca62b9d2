package report

// The two report documents are fully self-contained: inline styles, inline
// scripts, no external assets, so they render from a file:// open.

const flightTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.From}} 到 {{.To}} 航班信息 ({{.Date}})</title>
  <style>
    body {
      font-family: 'PingFang SC', 'Microsoft YaHei', sans-serif;
      max-width: 1200px;
      margin: 0 auto;
      padding: 20px;
      color: #333;
    }
    h1, h2 {
      color: #1a53ff;
    }
    .flight-list {
      display: flex;
      flex-direction: column;
      gap: 16px;
      margin-top: 20px;
    }
    .flight-item, [class*="list-item"] {
      border: 1px solid #e6e6e6;
      border-radius: 8px;
      box-shadow: 0 2px 8px rgba(0, 0, 0, 0.08);
      overflow: hidden;
      margin-bottom: 16px;
      padding: 16px;
      background-color: white;
    }
    .search-box {
      width: 100%;
      padding: 8px 16px;
      font-size: 16px;
      margin-bottom: 16px;
      border: 1px solid #ddd;
      border-radius: 4px;
    }
    .footer {
      margin-top: 40px;
      text-align: center;
      color: #999;
      font-size: 14px;
    }
    .flight-item *, [class*="list-item"] * {
      box-sizing: border-box;
    }
    .flight-item .price, [class*="list-item"] .price {
      color: #ff4d4f;
      font-weight: bold;
    }
  </style>
</head>
<body>
  <h1>{{.From}} 到 {{.To}} 航班信息</h1>
  <h2>日期: {{.Date}} · 找到 {{.Count}} 个航班</h2>

  <input type="text" class="search-box" id="flightSearch" placeholder="搜索航空公司、航班号..." />

  <div class="flight-list" id="flightList">
{{- range .Fragments}}
    {{.}}
{{- end}}
  </div>

  <div class="footer">
    <p>数据来源：携程网，生成时间：{{.Generated}}</p>
  </div>

  <script>
    const searchInput = document.getElementById('flightSearch');
    const flightItems = document.querySelectorAll('.flight-item, [class*="list-item"]');

    searchInput.addEventListener('input', function() {
      const searchTerm = this.value.toLowerCase();
      flightItems.forEach(item => {
        const itemText = item.textContent.toLowerCase();
        item.style.display = itemText.includes(searchTerm) ? '' : 'none';
      });
    });

    document.addEventListener('DOMContentLoaded', function() {
      document.querySelectorAll('a').forEach(link => {
        link.setAttribute('target', '_blank');
      });
    });
  </script>
</body>
</html>
`

const trainTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.From}} 到 {{.To}} 火车信息 ({{.Date}})</title>
  <style>
    body {
      font-family: 'PingFang SC', 'Microsoft YaHei', sans-serif;
      max-width: 1200px;
      margin: 0 auto;
      padding: 20px;
      color: #333;
    }
    h1, h2 {
      color: #1a53ff;
    }
    .view-controls {
      display: flex;
      gap: 16px;
      margin-bottom: 20px;
    }
    .view-button {
      padding: 8px 16px;
      background-color: #f0f0f0;
      border: 1px solid #ddd;
      border-radius: 4px;
      cursor: pointer;
    }
    .view-button.active {
      background-color: #1a53ff;
      color: white;
      border-color: #1a53ff;
    }
    .train-views > div {
      display: none;
    }
    .train-views > div.active {
      display: block;
    }
    .train-items-container {
      display: flex;
      flex-direction: column;
      gap: 16px;
    }
    .train-item {
      border: 1px solid #e6e6e6;
      border-radius: 8px;
      box-shadow: 0 2px 8px rgba(0, 0, 0, 0.08);
      overflow: hidden;
    }
    .train-row {
      display: flex;
      padding: 16px;
      justify-content: space-between;
      align-items: center;
      border-bottom: 1px solid #f0f0f0;
    }
    .train-info {
      display: flex;
      flex-direction: column;
      width: 120px;
      padding: 0 10px;
    }
    .train-num {
      font-size: 20px;
      font-weight: bold;
      margin-bottom: 4px;
    }
    .train-type {
      font-size: 12px;
      color: #666;
      background-color: #f0f0f0;
      padding: 2px 6px;
      border-radius: 10px;
      display: inline-block;
    }
    .train-detail {
      display: flex;
      align-items: center;
      flex: 1;
      margin: 0 20px;
    }
    .depart-box, .arrive-box {
      display: flex;
      flex-direction: column;
      min-width: 120px;
    }
    .time {
      font-size: 24px;
      font-weight: bold;
      margin-bottom: 8px;
    }
    .station {
      font-size: 14px;
    }
    .arrow-box {
      flex: 1;
      display: flex;
      justify-content: center;
      align-items: center;
      position: relative;
      padding: 0 20px;
      flex-direction: column;
    }
    .duration {
      font-size: 14px;
      color: #666;
      margin-bottom: 6px;
    }
    .arrow-oneway {
      display: block;
      height: 2px;
      width: 100%;
      background-color: #e0e0e0;
      position: relative;
    }
    .arrow-oneway:after {
      content: '';
      position: absolute;
      right: 0;
      top: -4px;
      width: 0;
      height: 0;
      border-top: 5px solid transparent;
      border-bottom: 5px solid transparent;
      border-left: 8px solid #e0e0e0;
    }
    .train-tags {
      display: flex;
      flex-wrap: wrap;
      gap: 8px;
      margin-top: 8px;
    }
    .tag {
      background-color: #f5f8ff;
      color: #1a53ff;
      padding: 2px 8px;
      border-radius: 4px;
      font-size: 12px;
    }
    .train-seats {
      display: flex;
      justify-content: space-between;
      align-items: center;
      padding: 16px;
      background-color: #f9f9f9;
      flex-wrap: wrap;
    }
    .seat-item {
      display: flex;
      flex-direction: column;
      align-items: center;
      margin: 8px 12px;
    }
    .seat-type {
      font-size: 14px;
      margin-bottom: 4px;
    }
    .seat-price {
      color: #ff4d4f;
      font-size: 18px;
      font-weight: bold;
    }
    .seat-count {
      font-size: 12px;
      color: #666;
      margin-top: 2px;
    }
    .search-box {
      width: 100%;
      padding: 8px 16px;
      font-size: 16px;
      margin-bottom: 16px;
      border: 1px solid #ddd;
      border-radius: 4px;
    }
    .train-table {
      width: 100%;
      border-collapse: collapse;
      border: 1px solid #e0e0e0;
    }
    .train-table th {
      background-color: #f5f5f5;
      padding: 12px 8px;
      text-align: left;
      cursor: pointer;
      position: relative;
    }
    .train-table th:hover {
      background-color: #e8e8e8;
    }
    .train-table th::after {
      content: '↕';
      position: absolute;
      right: 8px;
      opacity: 0.3;
    }
    .train-table th.asc::after {
      content: '↑';
      opacity: 1;
    }
    .train-table th.desc::after {
      content: '↓';
      opacity: 1;
    }
    .train-table td {
      padding: 12px 8px;
      border-top: 1px solid #e0e0e0;
    }
    .train-table tr:hover {
      background-color: #f9f9f9;
    }
    .footer {
      margin-top: 40px;
      text-align: center;
      color: #999;
      font-size: 14px;
    }
  </style>
</head>
<body>
  <h1>{{.From}} 到 {{.To}} 火车信息 ({{.Date}})</h1>
  <h2>找到 {{.Count}} 个车次</h2>

  <input type="text" class="search-box" id="trainSearch" placeholder="搜索车次、车站..." />

  <div class="view-controls">
    <button class="view-button active" data-view="card">卡片视图</button>
    <button class="view-button" data-view="table">表格视图</button>
  </div>

  <div class="train-views">
    <div class="train-card-view active">
      <div class="train-items-container" id="trainItemsContainer">
{{- range .Trains}}
        <div class="train-item" data-train="{{.Number}}">
          <div class="train-row">
            <div class="train-info">
              <div class="train-num">{{.Number}}</div>
              <div class="train-type">{{.Category}}</div>
            </div>
            <div class="train-detail">
              <div class="depart-box">
                <div class="time">{{.DepartTime}}</div>
                <div class="station">{{.DepartStation}}</div>
              </div>
              <div class="arrow-box">
                <div class="duration">{{.Duration}}</div>
                <i class="arrow-oneway"></i>
              </div>
              <div class="arrive-box">
                <div class="time">{{.ArriveTime}}</div>
                <div class="station">{{.ArriveStation}}</div>
              </div>
            </div>
            {{if .Tags}}<div class="train-tags"><span class="tag">{{.Tags}}</span></div>{{end}}
          </div>
          <div class="train-seats">
{{- range .Fares}}
            <div class="seat-item">
              <div class="seat-type">{{.Class}}</div>
              <div class="seat-price">{{.Price}}</div>
              <div class="seat-count">{{.Availability}}</div>
            </div>
{{- end}}
          </div>
        </div>
{{- end}}
      </div>
    </div>

    <div class="train-table-view">
      <table class="train-table" id="trainTable">
        <thead>
          <tr>
            <th data-sort="trainNumber">车次</th>
            <th data-sort="trainType">类型</th>
            <th data-sort="departTime">发车时间</th>
            <th data-sort="departStation">发站</th>
            <th data-sort="arrivalTime">到达时间</th>
            <th data-sort="arrivalStation">到站</th>
            <th data-sort="duration">历时</th>
            <th data-sort="seatInfo">席位</th>
          </tr>
        </thead>
        <tbody>
{{- range .Trains}}
          <tr>
            <td>{{.Number}}</td>
            <td>{{.Category}}</td>
            <td>{{.DepartTime}}</td>
            <td>{{.DepartStation}}</td>
            <td>{{.ArriveTime}}</td>
            <td>{{.ArriveStation}}</td>
            <td>{{.Duration}}</td>
            <td>{{fareSummary .Fares}}</td>
          </tr>
{{- end}}
        </tbody>
      </table>
    </div>
  </div>

  <div class="footer">
    <p>数据来源：携程网，生成时间：{{.Generated}}</p>
  </div>

  <script>
    const viewButtons = document.querySelectorAll('.view-button');
    const views = document.querySelectorAll('.train-views > div');

    viewButtons.forEach(button => {
      button.addEventListener('click', function() {
        const viewType = this.getAttribute('data-view');
        viewButtons.forEach(btn => btn.classList.remove('active'));
        this.classList.add('active');
        views.forEach(view => {
          view.classList.remove('active');
          if (view.classList.contains('train-' + viewType + '-view')) {
            view.classList.add('active');
          }
        });
      });
    });

    const tableHeaders = document.querySelectorAll('.train-table th');
    let sortColumn = 'departTime';
    let sortDirection = 'asc';

    function getColumnIndex(column) {
      let index = 0;
      tableHeaders.forEach((header, i) => {
        if (header.getAttribute('data-sort') === column) {
          index = i;
        }
      });
      return index;
    }

    function sortTable(column) {
      const table = document.getElementById('trainTable');
      const tbody = table.querySelector('tbody');
      const rows = Array.from(tbody.querySelectorAll('tr'));

      tableHeaders.forEach(header => {
        header.classList.remove('asc', 'desc');
      });

      if (sortColumn === column) {
        sortDirection = sortDirection === 'asc' ? 'desc' : 'asc';
      } else {
        sortColumn = column;
        sortDirection = 'asc';
      }

      const currentHeader = document.querySelector('th[data-sort="' + column + '"]');
      currentHeader.classList.add(sortDirection);

      const sortedRows = rows.sort((a, b) => {
        const aValue = a.cells[getColumnIndex(column)].textContent.trim();
        const bValue = b.cells[getColumnIndex(column)].textContent.trim();
        return sortDirection === 'asc'
          ? aValue.localeCompare(bValue)
          : bValue.localeCompare(aValue);
      });

      sortedRows.forEach(row => tbody.appendChild(row));
    }

    tableHeaders.forEach(header => {
      header.addEventListener('click', function() {
        sortTable(header.getAttribute('data-sort'));
      });
    });

    sortTable('departTime');

    const searchInput = document.getElementById('trainSearch');
    searchInput.addEventListener('input', function() {
      const searchTerm = this.value.toLowerCase();
      document.querySelectorAll('.train-item').forEach(item => {
        const trainNumber = item.getAttribute('data-train').toLowerCase();
        const cardText = item.textContent.toLowerCase();
        item.style.display =
          cardText.includes(searchTerm) || trainNumber.includes(searchTerm) ? '' : 'none';
      });
      document.querySelectorAll('.train-table tbody tr').forEach(row => {
        const rowText = row.textContent.toLowerCase();
        row.style.display = rowText.includes(searchTerm) ? '' : 'none';
      });
    });
  </script>
</body>
</html>
`
